package grader

import "github.com/remaimber-it/quizcore/internal/domain/question"

// Grader decides whether a student's answer matches the reference answer.
// Implementations must be synchronous and side-effect free: the verdict
// they return is final and is never revised by later enrichment.
type Grader interface {
	Grade(in Input) Result
}

// Input is one grading triple plus the item's point value.
type Input struct {
	QuestionType    string `json:"questionType"`
	StudentAnswer   string `json:"studentAnswer"`
	ReferenceAnswer string `json:"referenceAnswer"`
	// Points is awarded in full on a correct answer. Zero or less means
	// question.DefaultScore.
	Points int `json:"points,omitempty"`
}

// Result is all or nothing: Score is either the full point value or zero.
type Result struct {
	IsCorrect bool `json:"isCorrect"`
	Score     int  `json:"score"`
}

func points(in Input) int {
	if in.Points <= 0 {
		return question.DefaultScore
	}
	return in.Points
}
