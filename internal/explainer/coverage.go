package explainer

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/remaimber-it/quizcore/internal/domain/practice"
	"github.com/remaimber-it/quizcore/internal/grader"
)

// coveredShare is the share of a key point's keywords an answer must
// contain for the point to count as covered.
const coveredShare = 0.5

// Coverage reports which key points of the reference answer the student's
// answer touches. Key points come from the item when it has them, else from
// splitting the reference answer.
type Coverage struct{}

func (Coverage) Explain(ctx context.Context, c Context) (practice.Patch, error) {
	if err := ctx.Err(); err != nil {
		return practice.Patch{}, err
	}

	points := c.KeyPoints
	if len(points) == 0 {
		points = SplitKeyPoints(c.CorrectAnswer)
	}
	if len(points) == 0 {
		return practice.Patch{}, ErrNothingToExplain
	}

	answerWords := make(map[string]struct{})
	for _, k := range grader.Keywords(c.UserAnswer) {
		answerWords[k] = struct{}{}
	}

	var covered, missed []string
	for _, p := range points {
		if pointCovered(p, answerWords) {
			covered = append(covered, p)
		} else {
			missed = append(missed, p)
		}
	}

	analysis := coverageReport(c, covered, missed)
	return practice.Patch{
		DetailedAnalysis: analysis,
		Suggestion:       ExtractSuggestion(analysis),
	}, nil
}

func pointCovered(point string, answerWords map[string]struct{}) bool {
	kws := grader.Keywords(point)
	if len(kws) == 0 {
		return false
	}

	hit := 0
	for _, k := range kws {
		if _, ok := answerWords[k]; ok {
			hit++
		}
	}
	return float64(hit)/float64(len(kws)) >= coveredShare
}

func coverageReport(c Context, covered, missed []string) string {
	var b strings.Builder

	total := len(covered) + len(missed)
	fmt.Fprintf(&b, "## Key point coverage\n\nYour answer covers %d of %d key points.\n\n", len(covered), total)

	if len(covered) > 0 {
		b.WriteString("### Covered\n")
		for _, p := range covered {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		b.WriteString("\n")
	}
	if len(missed) > 0 {
		b.WriteString("### Missed\n")
		for _, p := range missed {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		b.WriteString("\n")
	}

	b.WriteString("### Suggestion\n")
	switch {
	case len(missed) == 0:
		b.WriteString("- Every key point is there. Work on precision and concise wording.\n")
	case c.IsCorrect:
		fmt.Fprintf(&b, "- Accepted, but strengthen it by also covering: %s.\n", strings.Join(missed, "; "))
	default:
		fmt.Fprintf(&b, "- Review these points and answer again: %s.\n", strings.Join(missed, "; "))
	}

	return b.String()
}

// ============================================================================
// Key point splitting
// ============================================================================

// SplitKeyPoints breaks a reference answer into individual points. It
// understands bullet and numbered lists and falls back to sentence
// boundaries for a single long paragraph.
func SplitKeyPoints(text string) []string {
	var points []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		trimmed := strings.TrimSpace(line)
		trimmed = strings.TrimLeft(trimmed, "•·")
		trimmed = strings.TrimSpace(trimmed)
		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			trimmed = strings.TrimSpace(trimmed[2:])
		}
		trimmed = stripNumberedPrefix(trimmed)

		if trimmed != "" {
			points = append(points, trimmed)
		}
	}

	if len(points) == 1 && len([]rune(points[0])) > 120 {
		if sentences := splitSentences(points[0]); len(sentences) > 1 {
			points = sentences
		}
	}
	return points
}

// stripNumberedPrefix removes a leading "1. " or "1) " style prefix.
func stripNumberedPrefix(s string) string {
	runes := []rune(s)
	if len(runes) < 3 || !unicode.IsDigit(runes[0]) {
		return s
	}

	for i, r := range runes {
		if r == '.' || r == ')' {
			if i+1 < len(runes) && runes[i+1] == ' ' {
				return strings.TrimSpace(string(runes[i+2:]))
			}
			break
		}
		if !unicode.IsDigit(r) {
			break
		}
	}
	return s
}

// splitSentences splits on ". " and on the full-width stop, keeping
// sentences longer than ten characters.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); len([]rune(s)) > 10 {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if r == '。' || (r == '.' && i+1 < len(runes) && runes[i+1] == ' ') {
			flush()
		}
	}
	flush()

	return sentences
}
