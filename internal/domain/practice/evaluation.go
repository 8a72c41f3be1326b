package practice

import (
	"strings"
	"time"

	"github.com/remaimber-it/quizcore/internal/id"
)

// Evaluation is one graded practice attempt. Verdicts and scores are fixed
// when it is created; only the advisory text of its items changes later.
type Evaluation struct {
	ID           string
	Topic        string
	Items        []Item
	TotalScore   int
	MaxScore     int
	CorrectCount int
	Accuracy     float64 // percent of items answered correctly
	Grade        string
	Suggestion   string
	TimeUsed     int // seconds, as reported by the client
	CreatedAt    time.Time
}

// Item is the verdict for a single question plus its explanation text.
type Item struct {
	ID               string
	Position         int
	QuestionID       int
	Type             string
	Title            string
	UserAnswer       string
	CorrectAnswer    string
	IsCorrect        bool
	Score            int
	MaxScore         int
	Feedback         string
	Explanation      string
	DetailedAnalysis string
	Suggestion       string
	NeedsAnalysis    bool
}

// Patch carries enrichment output. It has no verdict or score fields, so
// applying one cannot change how an item was graded.
type Patch struct {
	DetailedAnalysis string
	Suggestion       string
}

// Apply merges p into the item's advisory text and marks the item as no
// longer waiting for analysis. Blank patch fields keep the current text.
func (it *Item) Apply(p Patch) {
	if strings.TrimSpace(p.DetailedAnalysis) != "" {
		it.DetailedAnalysis = p.DetailedAnalysis
	}
	if strings.TrimSpace(p.Suggestion) != "" {
		it.Suggestion = p.Suggestion
	}
	it.NeedsAnalysis = false
}

// New builds an evaluation from graded items and computes its totals.
func New(topic string, timeUsed int, items []Item) *Evaluation {
	e := &Evaluation{
		ID:        id.GenerateID(),
		Topic:     topic,
		Items:     items,
		TimeUsed:  timeUsed,
		CreatedAt: time.Now().UTC(),
	}

	for i := range e.Items {
		it := &e.Items[i]
		if it.ID == "" {
			it.ID = id.GenerateID()
		}
		it.Position = i
		e.TotalScore += it.Score
		e.MaxScore += it.MaxScore
		if it.IsCorrect {
			e.CorrectCount++
		}
	}

	if len(e.Items) > 0 {
		e.Accuracy = float64(e.CorrectCount) / float64(len(e.Items)) * 100
	}
	e.Grade = Grade(e.TotalScore, e.MaxScore)
	e.Suggestion = OverallSuggestion(e.CorrectCount, len(e.Items))
	return e
}

// AllAnalyzed reports whether no item is still waiting for enrichment.
func (e *Evaluation) AllAnalyzed() bool {
	for _, it := range e.Items {
		if it.NeedsAnalysis {
			return false
		}
	}
	return true
}

// Grade bands
const (
	GradeExcellent = "excellent"
	GradeGood      = "good"
	GradeAverage   = "average"
	GradePass      = "pass"
	GradeFail      = "fail"
)

// Grade maps a score onto a band by percentage of maxScore.
func Grade(score, maxScore int) string {
	if maxScore <= 0 {
		return GradeFail
	}

	pct := float64(score) / float64(maxScore) * 100
	switch {
	case pct >= 90:
		return GradeExcellent
	case pct >= 80:
		return GradeGood
	case pct >= 70:
		return GradeAverage
	case pct >= 60:
		return GradePass
	default:
		return GradeFail
	}
}

// OverallSuggestion returns study advice for an accuracy level.
func OverallSuggestion(correct, total int) string {
	acc := 0.0
	if total > 0 {
		acc = float64(correct) / float64(total)
	}

	switch {
	case acc >= 0.9:
		return "Excellent work. Keep up this level of practice."
	case acc >= 0.8:
		return "Good result. Review the questions you missed to close the remaining gaps."
	case acc >= 0.7:
		return "Fair result. More practice on the fundamentals will help."
	case acc >= 0.6:
		return "Passing, but patchy. Revise the topic systematically and fill in the gaps."
	default:
		return "This topic needs more study. Revisit the core concepts and start with basic exercises."
	}
}
