package questionbank

import (
	"errors"
	"fmt"

	"github.com/remaimber-it/quizcore/internal/domain/question"
	"github.com/remaimber-it/quizcore/internal/id"
	"github.com/remaimber-it/quizcore/internal/similarity"
)

// ErrDuplicate is returned when a question's title is too close to one
// already in the bank.
var ErrDuplicate = errors.New("duplicate question")

// QuestionBank collects the accepted questions of one generation batch.
type QuestionBank struct {
	ID        string
	Subject   string
	Questions []question.Question
}

func New(subject string) *QuestionBank {
	return &QuestionBank{
		ID:        id.GenerateID(),
		Subject:   subject,
		Questions: []question.Question{},
	}
}

// Add appends q when it is valid and not a near-duplicate of an accepted
// question. Rejected questions leave the bank unchanged.
func (qb *QuestionBank) Add(q question.Question) error {
	if err := q.Validate(); err != nil {
		return err
	}

	if qb.IsDuplicate(q.Title) {
		return fmt.Errorf("%w: %q", ErrDuplicate, q.Title)
	}

	qb.Questions = append(qb.Questions, q)
	return nil
}

// Append adds a valid q without the duplicate check. It is the escape hatch
// for a fallback question that kept colliding after bounded reseeding.
func (qb *QuestionBank) Append(q question.Question) error {
	if err := q.Validate(); err != nil {
		return err
	}
	qb.Questions = append(qb.Questions, q)
	return nil
}

// IsDuplicate reports whether title collides with an accepted question.
func (qb *QuestionBank) IsDuplicate(title string) bool {
	return similarity.IsDuplicate(title, qb.Titles())
}

// Similarity is the highest similarity ratio between title and an accepted
// question's title.
func (qb *QuestionBank) Similarity(title string) float64 {
	return similarity.Max(title, qb.Titles())
}

func (qb *QuestionBank) Titles() []string {
	titles := make([]string, len(qb.Questions))
	for i, q := range qb.Questions {
		titles[i] = q.Title
	}
	return titles
}

// TotalScore sums the point values of the accepted questions.
func (qb *QuestionBank) TotalScore() int {
	total := 0
	for _, q := range qb.Questions {
		total += q.Score
	}
	return total
}
