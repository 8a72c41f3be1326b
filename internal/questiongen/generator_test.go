package questiongen_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/remaimber-it/quizcore/internal/domain/question"
	"github.com/remaimber-it/quizcore/internal/questiongen"
)

var allTypes = []question.Type{
	question.TypeChoice,
	question.TypeMultiple,
	question.TypeFill,
	question.TypeShort,
	question.TypeCoding,
	question.TypeEssay,
}

func TestQuestion_AlwaysValid(t *testing.T) {
	g := questiongen.New(42)

	for _, typ := range allTypes {
		t.Run(string(typ), func(t *testing.T) {
			for index := 0; index < 5; index++ {
				for attempt := 0; attempt < 5; attempt++ {
					q := g.Reseed(typ, "Go, Rust", "medium", index, attempt)
					if err := q.Validate(); err != nil {
						t.Fatalf("index %d attempt %d: %v", index, attempt, err)
					}
					if q.Type() != typ {
						t.Fatalf("expected type %q, got %q", typ, q.Type())
					}
					if q.Difficulty != "medium" {
						t.Errorf("expected difficulty medium, got %q", q.Difficulty)
					}
				}
			}
		})
	}
}

func TestQuestion_Deterministic(t *testing.T) {
	a := questiongen.New(7).Question(question.TypeMultiple, "Databases", "hard", 3)
	b := questiongen.New(7).Question(question.TypeMultiple, "Databases", "hard", 3)

	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected identical output for identical seed, got\n%+v\n%+v", a, b)
	}
}

func TestReseed_VariesTitles(t *testing.T) {
	g := questiongen.New(1)

	seen := map[string]bool{}
	for attempt := 0; attempt < 20; attempt++ {
		seen[g.Reseed(question.TypeChoice, "Networking", "easy", 0, attempt).Title] = true
	}

	if len(seen) < 2 {
		t.Errorf("expected reseeding to produce different titles, got %v", seen)
	}
}

func TestQuestion_NeighbouringPositionsDiffer(t *testing.T) {
	g := questiongen.New(-3)

	for _, typ := range allTypes {
		prev := g.Question(typ, "Go", "easy", 0).Title
		for index := 1; index < 8; index++ {
			title := g.Question(typ, "Go", "easy", index).Title
			if title == prev {
				t.Errorf("%s: positions %d and %d share title %q", typ, index-1, index, title)
			}
			prev = title
		}
	}
}

func TestQuestion_UsesFirstTopic(t *testing.T) {
	q := questiongen.New(0).Question(question.TypeFill, "Kubernetes，Docker", "easy", 0)

	if !strings.Contains(q.Title, "Kubernetes") {
		t.Errorf("expected title to mention the first topic, got %q", q.Title)
	}
	if strings.Contains(q.Title, "Docker") {
		t.Errorf("expected title to ignore later topics, got %q", q.Title)
	}
}

func TestMainTopic(t *testing.T) {
	tests := map[string]string{
		"Go":              "Go",
		" Go , Rust":      "Go",
		"闭包，作用域":          "闭包",
		"":                "the subject",
		", trailing only": "the subject",
	}

	for in, want := range tests {
		if got := questiongen.MainTopic(in); got != want {
			t.Errorf("MainTopic(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefaults(t *testing.T) {
	quotas := []question.Quota{
		{Type: question.TypeChoice, Count: 3, Score: 2, Difficulty: "easy"},
		{Type: question.TypeShort, Count: 2, Score: 0, Difficulty: "hard"},
		{Type: question.TypeCoding, Count: 1, Score: 20, Difficulty: "medium"},
	}

	got := questiongen.New(99).Defaults("Algorithms", quotas)

	if len(got) != 6 {
		t.Fatalf("expected 6 questions, got %d", len(got))
	}

	wantTypes := []question.Type{
		question.TypeChoice, question.TypeChoice, question.TypeChoice,
		question.TypeShort, question.TypeShort,
		question.TypeCoding,
	}
	wantScores := []int{2, 2, 2, question.DefaultScore, question.DefaultScore, 20}

	for i, q := range got {
		if q.ID != i+1 {
			t.Errorf("question %d: expected id %d, got %d", i, i+1, q.ID)
		}
		if q.Type() != wantTypes[i] {
			t.Errorf("question %d: expected type %q, got %q", i, wantTypes[i], q.Type())
		}
		if q.Score != wantScores[i] {
			t.Errorf("question %d: expected score %d, got %d", i, wantScores[i], q.Score)
		}
		if err := q.Validate(); err != nil {
			t.Errorf("question %d: %v", i, err)
		}
	}
}

func TestDefaults_NoQuotas(t *testing.T) {
	if got := questiongen.New(0).Defaults("x", nil); len(got) != 0 {
		t.Errorf("expected no questions, got %d", len(got))
	}
}
