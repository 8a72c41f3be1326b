package question

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// wire is the flat JSON form shared with model output and API clients.
type wire struct {
	ID              int       `json:"id"`
	Type            Type      `json:"type"`
	Title           string    `json:"title"`
	Options         []string  `json:"options,omitempty"`
	Answer          string    `json:"answer,omitempty"`
	ReferenceAnswer string    `json:"referenceAnswer,omitempty"`
	Requirements    string    `json:"requirements,omitempty"`
	Examples        []Example `json:"examples,omitempty"`
	KeyPoints       []string  `json:"keyPoints,omitempty"`
	Explanation     string    `json:"explanation,omitempty"`
	Score           int       `json:"score"`
	Difficulty      string    `json:"difficulty,omitempty"`
}

func (q Question) MarshalJSON() ([]byte, error) {
	w := wire{
		ID:          q.ID,
		Type:        q.Type(),
		Title:       q.Title,
		Answer:      q.Answer,
		Explanation: q.Explanation,
		Score:       q.Score,
		Difficulty:  q.Difficulty,
	}

	switch v := q.Variant.(type) {
	case Choice:
		w.Options = v.Options
	case Short:
		w.ReferenceAnswer = v.ReferenceAnswer
	case Coding:
		w.Requirements = v.Requirements
		w.Examples = v.Examples
	case Essay:
		w.KeyPoints = v.KeyPoints
	}

	return json.Marshal(w)
}

// UnmarshalJSON accepts the same loose shapes as FromMap and rejects
// items that fail validation.
func (q *Question) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	decoded, err := FromMap(m, "")
	if err != nil {
		return err
	}
	*q = decoded
	return nil
}

// FromMap decodes a loosely typed item as produced by a model. The item's
// own "type" wins over fallback. Aliases are accepted: "content" for the
// title, "correctAnswer" for the answer, options as strings or
// {key, content} objects, answers as strings or arrays, numbers as strings.
//
// The decoded question is returned even when validation fails, so the
// caller can see what was recovered.
func FromMap(m map[string]any, fallback Type) (Question, error) {
	t, ok := ParseType(str(m["type"]))
	if !ok {
		t = fallback
	}

	q := Question{
		ID:          integer(m["id"]),
		Title:       firstNonBlank(str(m["title"]), str(m["content"]), str(m["question"])),
		Answer:      firstNonBlank(joined(m["answer"], ","), joined(m["correctAnswer"], ",")),
		Explanation: str(m["explanation"]),
		Score:       integer(m["score"]),
		Difficulty:  str(m["difficulty"]),
	}

	switch t {
	case TypeChoice, TypeMultiple:
		q.Variant = Choice{Options: options(m["options"]), Multiple: t == TypeMultiple}
	case TypeFill:
		q.Variant = Fill{}
	case TypeShort:
		q.Variant = Short{ReferenceAnswer: str(m["referenceAnswer"])}
	case TypeCoding:
		q.Variant = Coding{Requirements: joined(m["requirements"], "\n"), Examples: examples(m["examples"])}
	case TypeEssay:
		q.Variant = Essay{KeyPoints: strs(m["keyPoints"])}
	default:
		return q, &MismatchError{Field: "type"}
	}

	return q, q.Validate()
}

// MapText returns a copy of q with f applied to every free-text field.
func (q Question) MapText(f func(string) string) Question {
	q.Title = f(q.Title)
	q.Answer = f(q.Answer)
	q.Explanation = f(q.Explanation)

	switch v := q.Variant.(type) {
	case Choice:
		opts := make([]string, len(v.Options))
		for i, o := range v.Options {
			opts[i] = f(o)
		}
		v.Options = opts
		q.Variant = v
	case Short:
		v.ReferenceAnswer = f(v.ReferenceAnswer)
		q.Variant = v
	case Coding:
		v.Requirements = f(v.Requirements)
		q.Variant = v
	case Essay:
		points := make([]string, len(v.KeyPoints))
		for i, p := range v.KeyPoints {
			points[i] = f(p)
		}
		v.KeyPoints = points
		q.Variant = v
	}
	return q
}

// ============================================================================
// Loose value helpers
// ============================================================================

func str(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

func integer(v any) int {
	switch x := v.(type) {
	case float64:
		return int(math.Round(x))
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			return int(math.Round(f))
		}
	}
	return 0
}

// joined renders a string or an array of scalars, joining with sep.
func joined(v any, sep string) string {
	if arr, ok := v.([]any); ok {
		return strings.Join(strs(arr), sep)
	}
	return str(v)
}

func strs(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		if s := str(v); s != "" {
			return []string{s}
		}
		return nil
	}

	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s := str(e); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func options(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(arr))
	for _, e := range arr {
		switch o := e.(type) {
		case map[string]any:
			key, content := str(o["key"]), firstNonBlank(str(o["content"]), str(o["text"]))
			switch {
			case key != "" && content != "":
				out = append(out, key+". "+content)
			case content != "":
				out = append(out, content)
			}
		default:
			if s := str(o); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func examples(v any) []Example {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}

	out := make([]Example, 0, len(arr))
	for _, e := range arr {
		if o, ok := e.(map[string]any); ok {
			out = append(out, Example{Input: str(o["input"]), Output: str(o["output"])})
		}
	}
	return out
}

func firstNonBlank(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}
