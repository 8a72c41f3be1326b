package question_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/remaimber-it/quizcore/internal/domain/question"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		q         question.Question
		wantField string
	}{
		{
			name: "valid choice",
			q:    question.Question{Title: "Q", Answer: "A", Variant: question.Choice{Options: []string{"A. x", "B. y"}}},
		},
		{
			name:      "choice without options",
			q:         question.Question{Title: "Q", Answer: "A", Variant: question.Choice{}},
			wantField: "options",
		},
		{
			name:      "multiple without answer",
			q:         question.Question{Title: "Q", Variant: question.Choice{Options: []string{"A"}, Multiple: true}},
			wantField: "answer",
		},
		{
			name:      "fill without answer",
			q:         question.Question{Title: "Q", Answer: "  ", Variant: question.Fill{}},
			wantField: "answer",
		},
		{
			name:      "short needs reference answer",
			q:         question.Question{Title: "Q", Answer: "A", Variant: question.Short{}},
			wantField: "referenceAnswer",
		},
		{
			name:      "coding needs requirements",
			q:         question.Question{Title: "Q", Variant: question.Coding{}},
			wantField: "requirements",
		},
		{
			name:      "essay needs key points",
			q:         question.Question{Title: "Q", Variant: question.Essay{KeyPoints: []string{" "}}},
			wantField: "keyPoints",
		},
		{
			name:      "title required",
			q:         question.Question{Variant: question.Fill{}, Answer: "A"},
			wantField: "title",
		},
		{
			name:      "no variant",
			q:         question.Question{Title: "Q"},
			wantField: "type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, question.ErrStructuralMismatch) {
				t.Fatalf("expected ErrStructuralMismatch, got %v", err)
			}
			var mismatch *question.MismatchError
			if !errors.As(err, &mismatch) {
				t.Fatalf("expected *MismatchError, got %T", err)
			}
			if mismatch.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, mismatch.Field)
			}
		})
	}
}

func TestNew(t *testing.T) {
	q, err := question.New(question.Question{Title: "Q", Answer: "A"}, question.Fill{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Type() != question.TypeFill {
		t.Errorf("expected type fill, got %q", q.Type())
	}

	if _, err := question.New(question.Question{Title: "Q"}, question.Fill{}); err == nil {
		t.Error("expected error for fill item without answer")
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in     string
		want   question.Type
		wantOK bool
	}{
		{"choice", question.TypeChoice, true},
		{"single_choice", question.TypeChoice, true},
		{"multiple_choice", question.TypeMultiple, true},
		{"FILL_BLANK", question.TypeFill, true},
		{"short_answer", question.TypeShort, true},
		{"programming", question.TypeCoding, true},
		{" essay ", question.TypeEssay, true},
		{"matching", "", false},
	}

	for _, tt := range tests {
		got, ok := question.ParseType(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseType(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFromMap(t *testing.T) {
	raw := `{
		"id": "3",
		"type": "single_choice",
		"content": "Which is a prime?",
		"options": [{"key":"A","content":"4"}, {"key":"B","content":"7"}],
		"correctAnswer": "B",
		"score": 5,
		"difficulty": "easy"
	}`
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatal(err)
	}

	q, err := question.FromMap(m, question.TypeFill)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.ID != 3 {
		t.Errorf("expected id 3, got %d", q.ID)
	}
	if q.Type() != question.TypeChoice {
		t.Errorf("expected type choice, got %q", q.Type())
	}
	if q.Title != "Which is a prime?" {
		t.Errorf("expected title from content, got %q", q.Title)
	}
	if q.Answer != "B" {
		t.Errorf("expected answer B, got %q", q.Answer)
	}
	opts := q.Variant.(question.Choice).Options
	if len(opts) != 2 || opts[1] != "B. 7" {
		t.Errorf("unexpected options %v", opts)
	}
	if q.Score != 5 {
		t.Errorf("expected score 5, got %d", q.Score)
	}
}

func TestFromMap_FallbackTypeAndArrays(t *testing.T) {
	m := map[string]any{
		"title":  "Pick all even numbers",
		"answer": []any{"A", "C"},
		"options": []any{
			"A. 2", "B. 3", "C. 4",
		},
	}

	q, err := question.FromMap(m, question.TypeMultiple)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Type() != question.TypeMultiple {
		t.Errorf("expected fallback type multiple, got %q", q.Type())
	}
	if q.Answer != "A,C" {
		t.Errorf("expected joined answer, got %q", q.Answer)
	}
}

func TestFromMap_Mismatch(t *testing.T) {
	m := map[string]any{"title": "Explain closures", "answer": "x"}

	q, err := question.FromMap(m, question.TypeShort)
	if !errors.Is(err, question.ErrStructuralMismatch) {
		t.Fatalf("expected structural mismatch, got %v", err)
	}
	if q.Title != "Explain closures" {
		t.Errorf("expected partially decoded title, got %q", q.Title)
	}

	if _, err := question.FromMap(map[string]any{"title": "x"}, ""); !errors.Is(err, question.ErrStructuralMismatch) {
		t.Errorf("expected mismatch for unknown type, got %v", err)
	}
}

func TestMarshalJSON(t *testing.T) {
	q := question.Question{
		ID:      1,
		Title:   "Write a sum function",
		Score:   10,
		Variant: question.Coding{Requirements: "return a+b", Examples: []question.Example{{Input: "1 2", Output: "3"}}},
	}

	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := string(data)
	for _, want := range []string{`"type":"coding"`, `"requirements":"return a+b"`, `"examples":[{"input":"1 2","output":"3"}]`} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %s in %s", want, s)
		}
	}
	if strings.Contains(s, "options") {
		t.Errorf("expected no options for coding item, got %s", s)
	}

	var back question.Question
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unexpected error decoding: %v", err)
	}
	if back.Variant.(question.Coding).Examples[0].Output != "3" {
		t.Errorf("expected examples to survive decoding, got %+v", back.Variant)
	}
}

func TestMapText(t *testing.T) {
	q := question.Question{
		Title:   "t",
		Answer:  "a",
		Variant: question.Essay{KeyPoints: []string{"p1", "p2"}},
	}

	got := q.MapText(strings.ToUpper)

	if got.Title != "T" || got.Answer != "A" {
		t.Errorf("expected upper-cased common fields, got %q %q", got.Title, got.Answer)
	}
	if got.Variant.(question.Essay).KeyPoints[1] != "P2" {
		t.Errorf("expected upper-cased key points, got %v", got.Variant)
	}
	if q.Variant.(question.Essay).KeyPoints[1] != "p2" {
		t.Error("expected original question to be unchanged")
	}
}
