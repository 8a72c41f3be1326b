// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"

	"github.com/remaimber-it/quizcore/internal/domain/practice"
)

const schema = `
CREATE TABLE IF NOT EXISTS evaluations (
    id TEXT PRIMARY KEY,
    topic TEXT NOT NULL,
    total_score INTEGER NOT NULL,
    max_score INTEGER NOT NULL,
    correct_count INTEGER NOT NULL,
    accuracy REAL NOT NULL,
    grade TEXT NOT NULL,
    suggestion TEXT NOT NULL,
    time_used INTEGER NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS evaluation_items (
    id TEXT PRIMARY KEY,
    evaluation_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    question_id INTEGER NOT NULL,
    type TEXT NOT NULL,
    title TEXT NOT NULL,
    user_answer TEXT NOT NULL,
    correct_answer TEXT NOT NULL,
    is_correct INTEGER NOT NULL,
    score INTEGER NOT NULL,
    max_score INTEGER NOT NULL,
    feedback TEXT NOT NULL,
    explanation TEXT NOT NULL,
    detailed_analysis TEXT NOT NULL,
    suggestion TEXT NOT NULL,
    needs_ai_analysis INTEGER NOT NULL,
    FOREIGN KEY (evaluation_id) REFERENCES evaluations(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_evaluation_items_evaluation
    ON evaluation_items (evaluation_id, position);
`

type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; enrichment workers share this handle.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Evaluations
// ============================================================================

func (s *SQLiteStore) SaveEvaluation(ctx context.Context, e *practice.Evaluation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO evaluations
		 (id, topic, total_score, max_score, correct_count, accuracy, grade, suggestion, time_used, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Topic, e.TotalScore, e.MaxScore, e.CorrectCount, e.Accuracy,
		e.Grade, e.Suggestion, e.TimeUsed, e.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	for _, it := range e.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO evaluation_items
			 (id, evaluation_id, position, question_id, type, title, user_answer, correct_answer,
			  is_correct, score, max_score, feedback, explanation, detailed_analysis, suggestion, needs_ai_analysis)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			it.ID, e.ID, it.Position, it.QuestionID, it.Type, it.Title, it.UserAnswer, it.CorrectAnswer,
			it.IsCorrect, it.Score, it.MaxScore, it.Feedback, it.Explanation,
			it.DetailedAnalysis, it.Suggestion, it.NeedsAnalysis,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetEvaluation(ctx context.Context, id string) (*practice.Evaluation, error) {
	var e practice.Evaluation
	var createdAt string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, topic, total_score, max_score, correct_count, accuracy, grade, suggestion, time_used, created_at
		 FROM evaluations WHERE id = ?`, id,
	).Scan(&e.ID, &e.Topic, &e.TotalScore, &e.MaxScore, &e.CorrectCount, &e.Accuracy,
		&e.Grade, &e.Suggestion, &e.TimeUsed, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, position, question_id, type, title, user_answer, correct_answer, is_correct,
		        score, max_score, feedback, explanation, detailed_analysis, suggestion, needs_ai_analysis
		 FROM evaluation_items WHERE evaluation_id = ? ORDER BY position`, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it practice.Item
		if err := rows.Scan(&it.ID, &it.Position, &it.QuestionID, &it.Type, &it.Title,
			&it.UserAnswer, &it.CorrectAnswer, &it.IsCorrect, &it.Score, &it.MaxScore,
			&it.Feedback, &it.Explanation, &it.DetailedAnalysis, &it.Suggestion, &it.NeedsAnalysis,
		); err != nil {
			return nil, err
		}
		e.Items = append(e.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &e, nil
}

// ============================================================================
// Analysis enrichment
// ============================================================================

// PatchAnalysis writes enrichment text to one item and clears its pending
// flag. Verdict and score columns are never part of the update. Blank patch
// fields keep the stored text.
func (s *SQLiteStore) PatchAnalysis(ctx context.Context, itemID string, p practice.Patch) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE evaluation_items SET
		     detailed_analysis = CASE WHEN TRIM(?1) <> '' THEN ?1 ELSE detailed_analysis END,
		     suggestion        = CASE WHEN TRIM(?2) <> '' THEN ?2 ELSE suggestion END,
		     needs_ai_analysis = 0
		 WHERE id = ?3`,
		p.DetailedAnalysis, p.Suggestion, itemID,
	)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) AnalysisStatus(ctx context.Context, evaluationID string) ([]ItemStatus, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM evaluations WHERE id = ?", evaluationID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, position, needs_ai_analysis FROM evaluation_items WHERE evaluation_id = ? ORDER BY position",
		evaluationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []ItemStatus
	for rows.Next() {
		var st ItemStatus
		if err := rows.Scan(&st.ItemID, &st.Position, &st.NeedsAnalysis); err != nil {
			return nil, err
		}
		statuses = append(statuses, st)
	}
	return statuses, rows.Err()
}
