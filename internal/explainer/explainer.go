// Package explainer writes the advisory text attached to graded items: a
// templated analysis available immediately, and a slower key-point coverage
// report produced in the background. Neither can change a verdict.
package explainer

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/remaimber-it/quizcore/internal/domain/practice"
)

// ErrNothingToExplain is returned when the reference gives no material.
var ErrNothingToExplain = errors.New("explainer: reference answer has no key points")

// Context is what an explainer knows about one graded item.
type Context struct {
	QuestionType  string
	Title         string
	Topic         string
	UserAnswer    string
	CorrectAnswer string
	KeyPoints     []string
	IsCorrect     bool
}

// Explainer produces enrichment for one item.
type Explainer interface {
	Explain(ctx context.Context, c Context) (practice.Patch, error)
}

// MaxSuggestion bounds the length of an extracted suggestion.
const MaxSuggestion = 200

var (
	suggestionHeading = regexp.MustCompile(`(?i)#*\s*(study\s+)?suggestions?\s*:?`)
	leadingBullet     = regexp.MustCompile(`^\s*[-*]\s*`)
	newlines          = regexp.MustCompile(`\n+`)
)

// ExtractSuggestion returns the text following the first suggestion heading
// in analysis, flattened to one line and cut to MaxSuggestion characters.
// It returns "" when there is no such heading.
func ExtractSuggestion(analysis string) string {
	loc := suggestionHeading.FindStringIndex(analysis)
	if loc == nil {
		return ""
	}

	s := analysis[loc[1]:]
	s = leadingBullet.ReplaceAllString(s, "")
	s = newlines.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	if utf8.RuneCountInString(s) > MaxSuggestion {
		s = string([]rune(s)[:MaxSuggestion]) + "..."
	}
	return s
}
