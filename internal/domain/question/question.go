// Package question defines the exam item record: a set of common fields plus
// one type-specific variant. A Question is only handed to callers after it
// passes Validate.
package question

import (
	"errors"
	"fmt"
	"strings"
)

type Type string

const (
	TypeChoice   Type = "choice"
	TypeMultiple Type = "multiple"
	TypeFill     Type = "fill"
	TypeShort    Type = "short"
	TypeCoding   Type = "coding"
	TypeEssay    Type = "essay"
)

// DefaultScore is the point value used when an item carries none.
const DefaultScore = 10

// ErrStructuralMismatch is wrapped by every validation failure.
var ErrStructuralMismatch = errors.New("structural mismatch")

// MismatchError names the required field a question is missing.
type MismatchError struct {
	Type  Type
	Field string
}

func (e *MismatchError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("question: %s: missing %s", ErrStructuralMismatch, e.Field)
	}
	return fmt.Sprintf("question: %s: %s item missing %s", ErrStructuralMismatch, e.Type, e.Field)
}

func (e *MismatchError) Unwrap() error {
	return ErrStructuralMismatch
}

// Variant carries the fields only one question type has.
// It is implemented by Choice, Fill, Short, Coding and Essay.
type Variant interface {
	Type() Type
	// missing returns the first required field absent from q, or "".
	missing(q Question) string
}

type Question struct {
	ID          int
	Title       string
	Answer      string
	Explanation string
	Score       int
	Difficulty  string
	Variant     Variant
}

// Choice covers single and multiple choice items.
type Choice struct {
	Options  []string
	Multiple bool
}

type Fill struct{}

type Short struct {
	ReferenceAnswer string
}

type Example struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

type Coding struct {
	Requirements string
	Examples     []Example
}

type Essay struct {
	KeyPoints []string
}

func (c Choice) Type() Type {
	if c.Multiple {
		return TypeMultiple
	}
	return TypeChoice
}

func (Fill) Type() Type   { return TypeFill }
func (Short) Type() Type  { return TypeShort }
func (Coding) Type() Type { return TypeCoding }
func (Essay) Type() Type  { return TypeEssay }

func (c Choice) missing(q Question) string {
	if !anyNonBlank(c.Options) {
		return "options"
	}
	if blank(q.Answer) {
		return "answer"
	}
	return ""
}

func (Fill) missing(q Question) string {
	if blank(q.Answer) {
		return "answer"
	}
	return ""
}

func (s Short) missing(Question) string {
	if blank(s.ReferenceAnswer) {
		return "referenceAnswer"
	}
	return ""
}

func (c Coding) missing(Question) string {
	if blank(c.Requirements) {
		return "requirements"
	}
	return ""
}

func (e Essay) missing(Question) string {
	if !anyNonBlank(e.KeyPoints) {
		return "keyPoints"
	}
	return ""
}

// New attaches v to common and validates the result.
func New(common Question, v Variant) (Question, error) {
	common.Variant = v
	if err := common.Validate(); err != nil {
		return Question{}, err
	}
	return common, nil
}

// Type returns the variant's type, or "" when no variant is set.
func (q Question) Type() Type {
	if q.Variant == nil {
		return ""
	}
	return q.Variant.Type()
}

// Validate checks the title and the required fields of the question's type.
// Failures are *MismatchError values wrapping ErrStructuralMismatch.
func (q Question) Validate() error {
	if q.Variant == nil {
		return &MismatchError{Field: "type"}
	}
	if blank(q.Title) {
		return &MismatchError{Type: q.Type(), Field: "title"}
	}
	if field := q.Variant.missing(q); field != "" {
		return &MismatchError{Type: q.Type(), Field: field}
	}
	return nil
}

// ReferenceAnswer is the text a student's answer is graded against.
func (q Question) ReferenceAnswer() string {
	if s, ok := q.Variant.(Short); ok && !blank(s.ReferenceAnswer) {
		return s.ReferenceAnswer
	}
	return q.Answer
}

// Quota requests Count items of one type, each worth Score points.
type Quota struct {
	Type       Type   `json:"type"`
	Count      int    `json:"count"`
	Score      int    `json:"scorePer"`
	Difficulty string `json:"difficulty"`
}

// ParseType resolves a type name, accepting the aliases upstream producers
// use. The second return value is false for unknown names.
func ParseType(s string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "choice", "single_choice", "single":
		return TypeChoice, true
	case "multiple", "multiple_choice":
		return TypeMultiple, true
	case "fill", "fill_blank":
		return TypeFill, true
	case "short", "short_answer":
		return TypeShort, true
	case "coding", "programming":
		return TypeCoding, true
	case "essay":
		return TypeEssay, true
	}
	return "", false
}

// TypeName returns a human label for t.
func TypeName(t Type) string {
	switch t {
	case TypeChoice:
		return "single choice"
	case TypeMultiple:
		return "multiple choice"
	case TypeFill:
		return "fill in the blank"
	case TypeShort:
		return "short answer"
	case TypeCoding:
		return "coding"
	case TypeEssay:
		return "essay"
	default:
		return "unknown type"
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func anyNonBlank(ss []string) bool {
	for _, s := range ss {
		if !blank(s) {
			return true
		}
	}
	return false
}
