package grader

import (
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	shortOverlap = 0.3
	essayOverlap = 0.2
	essayMinLen  = 50
	codingMinLen = 20
)

// codingMarkers are the syntax keywords a plausible coding answer contains.
var codingMarkers = []string{
	"function", "class", "const", "let", "var", "if", "for", "while", "return", "async", "await",
}

// Judge grades by per-type heuristics. It is an approximation: it never
// runs code or understands meaning, and trades precision for an instant,
// deterministic verdict.
type Judge struct{}

func NewJudge() *Judge {
	return &Judge{}
}

func (j *Judge) Grade(in Input) Result {
	if !j.correct(in) {
		return Result{IsCorrect: false, Score: 0}
	}
	return Result{IsCorrect: true, Score: points(in)}
}

func (j *Judge) correct(in Input) bool {
	student := strings.TrimSpace(in.StudentAnswer)
	reference := strings.TrimSpace(in.ReferenceAnswer)
	if student == "" || reference == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(in.QuestionType)) {
	case "choice", "single_choice", "single":
		return strings.EqualFold(student, reference)
	case "multiple", "multiple_choice":
		set := choiceSet(student)
		return len(set) > 0 && slices.Equal(set, choiceSet(reference))
	case "fill", "fill_blank":
		return strings.EqualFold(student, reference) ||
			strings.Contains(strings.ToLower(student), strings.ToLower(reference))
	case "short", "short_answer":
		return Overlap(student, reference) >= shortOverlap
	case "essay":
		return utf8.RuneCountInString(in.StudentAnswer) >= essayMinLen &&
			Overlap(student, reference) >= essayOverlap
	case "coding", "programming":
		return plausibleCode(in.StudentAnswer)
	default:
		return strings.EqualFold(student, reference)
	}
}

// choiceSet turns "b, A,a" into the sorted set [A B].
func choiceSet(answer string) []string {
	var set []string
	for _, part := range strings.Split(answer, ",") {
		p := strings.ToUpper(strings.TrimSpace(part))
		if p != "" {
			set = append(set, p)
		}
	}
	slices.Sort(set)
	return slices.Compact(set)
}

// plausibleCode is a structural check only: a marker keyword anywhere in
// the text, a brace pair, and a minimum length. "x=1" fails it even when
// it is the right answer.
func plausibleCode(answer string) bool {
	lower := strings.ToLower(answer)

	hasMarker := false
	for _, kw := range codingMarkers {
		if strings.Contains(lower, kw) {
			hasMarker = true
			break
		}
	}

	hasBraces := strings.Contains(answer, "{") && strings.Contains(answer, "}")
	return hasMarker && hasBraces && utf8.RuneCountInString(answer) >= codingMinLen
}
