// internal/service/evaluation.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/remaimber-it/quizcore/internal/domain/practice"
	"github.com/remaimber-it/quizcore/internal/domain/question"
	"github.com/remaimber-it/quizcore/internal/explainer"
	"github.com/remaimber-it/quizcore/internal/grader"
	"github.com/remaimber-it/quizcore/internal/store"
	"github.com/remaimber-it/quizcore/internal/worker"
)

var ErrNoQuestions = errors.New("evaluation has no questions")

// EvaluationRequest is a submitted practice attempt. Answers line up with
// Questions by position; missing answers count as blank.
type EvaluationRequest struct {
	Topic     string
	Questions []question.Question
	Answers   []string
	TimeUsed  int
}

// PoolConfig sizes the enrichment queue.
type PoolConfig struct {
	Workers   int
	QueueSize int
}

// analysisTask is the message handed to enrichment workers.
type analysisTask struct {
	evaluationID string
	context      explainer.Context
}

// EvaluationService grades attempts synchronously and enriches the
// explanation of each item in the background. The verdict returned by
// Evaluate is final; enrichment only ever patches advisory text.
type EvaluationService struct {
	store     store.Store
	grader    grader.Grader
	explainer explainer.Explainer
	pool      *worker.Pool[analysisTask]
	logger    *slog.Logger

	mu      sync.RWMutex
	pending map[string]*pendingWork // evaluationID → outstanding tasks
}

// pendingWork tracks the enrichment tasks of one evaluation. The entry is
// dropped when remaining reaches zero.
type pendingWork struct {
	wg        sync.WaitGroup
	remaining int
}

// NewEvaluationService starts the enrichment workers. ctx bounds their
// lifetime; Close drains them.
func NewEvaluationService(ctx context.Context, s store.Store, g grader.Grader, ex explainer.Explainer, cfg PoolConfig, logger *slog.Logger) *EvaluationService {
	if logger == nil {
		logger = slog.Default()
	}

	es := &EvaluationService{
		store:     s,
		grader:    g,
		explainer: ex,
		logger:    logger,
		pending:   make(map[string]*pendingWork),
	}
	es.pool = worker.NewPool(ctx, cfg.Workers, cfg.QueueSize, es.enrich, logger)
	return es
}

// Evaluate grades every answer, persists the evaluation and queues one
// enrichment task per item.
func (es *EvaluationService) Evaluate(ctx context.Context, req EvaluationRequest) (*practice.Evaluation, error) {
	if len(req.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	items := make([]practice.Item, len(req.Questions))
	contexts := make([]explainer.Context, len(req.Questions))

	for i, q := range req.Questions {
		answer := ""
		if i < len(req.Answers) {
			answer = req.Answers[i]
		}

		maxScore := q.Score
		if maxScore <= 0 {
			maxScore = question.DefaultScore
		}

		reference := q.ReferenceAnswer()
		verdict := es.grader.Grade(grader.Input{
			QuestionType:    string(q.Type()),
			StudentAnswer:   answer,
			ReferenceAnswer: reference,
			Points:          maxScore,
		})

		c := explainer.Context{
			QuestionType:  string(q.Type()),
			Title:         q.Title,
			Topic:         req.Topic,
			UserAnswer:    answer,
			CorrectAnswer: reference,
			IsCorrect:     verdict.IsCorrect,
		}
		if essay, ok := q.Variant.(question.Essay); ok {
			c.KeyPoints = essay.KeyPoints
		}
		contexts[i] = c

		items[i] = practice.Item{
			QuestionID:       q.ID,
			Type:             string(q.Type()),
			Title:            q.Title,
			UserAnswer:       answer,
			CorrectAnswer:    reference,
			IsCorrect:        verdict.IsCorrect,
			Score:            verdict.Score,
			MaxScore:         maxScore,
			Feedback:         feedback(verdict.IsCorrect, reference),
			Explanation:      q.Explanation,
			DetailedAnalysis: explainer.Analysis(c),
			Suggestion:       explainer.Suggestion(c),
			NeedsAnalysis:    true,
		}
	}

	e := practice.New(req.Topic, req.TimeUsed, items)
	if err := es.store.SaveEvaluation(ctx, e); err != nil {
		return nil, fmt.Errorf("save evaluation: %w", err)
	}

	// The extra count held here keeps the entry alive while tasks are
	// still being submitted; the final done releases it.
	work := &pendingWork{remaining: 1}
	work.wg.Add(1)
	es.mu.Lock()
	es.pending[e.ID] = work
	es.mu.Unlock()

	for i := range e.Items {
		it := &e.Items[i]

		es.mu.Lock()
		work.remaining++
		work.wg.Add(1)
		es.mu.Unlock()

		err := es.pool.TrySubmit(it.ID, analysisTask{evaluationID: e.ID, context: contexts[i]})
		if err == nil {
			continue
		}
		es.done(e.ID)

		// The fast verdict stands on its own; stop advertising pending work.
		es.logger.Warn("enrichment not queued",
			"evaluation_id", e.ID,
			"item_id", it.ID,
			"error", err,
		)
		if err := es.store.PatchAnalysis(ctx, it.ID, practice.Patch{}); err != nil {
			es.logger.Error("failed to clear pending analysis", "item_id", it.ID, "error", err)
		}
		it.Apply(practice.Patch{})
	}
	es.done(e.ID)

	es.logger.Info("evaluation graded",
		"evaluation_id", e.ID,
		"score", e.TotalScore,
		"max_score", e.MaxScore,
		"correct", e.CorrectCount,
	)
	return e, nil
}

// enrich is the worker handler. Whatever happens, the item ends up no
// longer pending and its verdict is untouched.
func (es *EvaluationService) enrich(ctx context.Context, itemID string, t analysisTask) error {
	defer es.done(t.evaluationID)

	patch, err := es.explainer.Explain(ctx, t.context)
	if err != nil {
		es.logger.Warn("enrichment failed, keeping basic analysis",
			"evaluation_id", t.evaluationID,
			"item_id", itemID,
			"error", err,
		)
		patch = practice.Patch{}
	}

	// The write must land even after ctx is cancelled, or the item stays
	// pending.
	if err := es.store.PatchAnalysis(context.WithoutCancel(ctx), itemID, patch); err != nil {
		return fmt.Errorf("patch analysis: %w", err)
	}
	return nil
}

func (es *EvaluationService) done(evaluationID string) {
	es.mu.Lock()
	work, ok := es.pending[evaluationID]
	if ok {
		work.remaining--
		if work.remaining == 0 {
			delete(es.pending, evaluationID)
		}
	}
	es.mu.Unlock()

	if ok {
		work.wg.Done()
	}
}

// WaitForEvaluation blocks until every enrichment task of an evaluation
// has finished. It returns at once for unknown or finished evaluations.
func (es *EvaluationService) WaitForEvaluation(evaluationID string) {
	es.mu.RLock()
	work, ok := es.pending[evaluationID]
	es.mu.RUnlock()

	if ok {
		work.wg.Wait()
	}
}

// PendingEvaluations counts evaluations with enrichment still outstanding.
func (es *EvaluationService) PendingEvaluations() int {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return len(es.pending)
}

// Get loads a stored evaluation.
func (es *EvaluationService) Get(ctx context.Context, evaluationID string) (*practice.Evaluation, error) {
	return es.store.GetEvaluation(ctx, evaluationID)
}

// Status reports per-item enrichment progress and whether all is done.
func (es *EvaluationService) Status(ctx context.Context, evaluationID string) ([]store.ItemStatus, bool, error) {
	statuses, err := es.store.AnalysisStatus(ctx, evaluationID)
	if err != nil {
		return nil, false, err
	}

	all := true
	for _, st := range statuses {
		if st.NeedsAnalysis {
			all = false
			break
		}
	}
	return statuses, all, nil
}

// Close stops accepting enrichment work and waits for queued tasks.
func (es *EvaluationService) Close() error {
	es.logger.Info("draining enrichment workers", "pending_evaluations", es.PendingEvaluations())
	return es.pool.Close()
}

func feedback(correct bool, reference string) string {
	if correct {
		return "Correct!"
	}
	return "Incorrect. The correct answer is: " + reference
}
