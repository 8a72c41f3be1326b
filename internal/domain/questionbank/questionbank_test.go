package questionbank_test

import (
	"errors"
	"testing"

	"github.com/remaimber-it/quizcore/internal/domain/question"
	"github.com/remaimber-it/quizcore/internal/domain/questionbank"
)

func fill(title string) question.Question {
	return question.Question{Title: title, Answer: "x", Score: 5, Variant: question.Fill{}}
}

func TestNewQuestionBank(t *testing.T) {
	bank := questionbank.New("Go")

	if bank.Subject != "Go" {
		t.Errorf("expected subject %q, got %q", "Go", bank.Subject)
	}
	if bank.ID == "" {
		t.Error("expected an ID")
	}
	if len(bank.Questions) != 0 {
		t.Errorf("expected empty question bank, got %d questions", len(bank.Questions))
	}
}

func TestAdd(t *testing.T) {
	bank := questionbank.New("Go")

	if err := bank.Add(fill("What does ____ keyword start?")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bank.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(bank.Questions))
	}
}

func TestAdd_Invalid(t *testing.T) {
	bank := questionbank.New("Go")

	err := bank.Add(question.Question{Title: "no answer", Variant: question.Fill{}})
	if !errors.Is(err, question.ErrStructuralMismatch) {
		t.Fatalf("expected structural mismatch, got %v", err)
	}
	if len(bank.Questions) != 0 {
		t.Error("expected no questions after failed add")
	}
}

func TestAdd_Duplicate(t *testing.T) {
	bank := questionbank.New("JavaScript")

	if err := bank.Add(fill("什么是闭包")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := bank.Add(fill("什么是闭包？"))
	if !errors.Is(err, questionbank.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if len(bank.Questions) != 1 {
		t.Errorf("expected 1 question, got %d", len(bank.Questions))
	}
}

func TestAddMultipleQuestions(t *testing.T) {
	bank := questionbank.New("Go")

	titles := []string{
		"Explain the select statement",
		"What is a nil map write?",
		"Describe struct embedding",
	}

	for _, title := range titles {
		if err := bank.Add(fill(title)); err != nil {
			t.Fatalf("failed to add question %q: %v", title, err)
		}
	}

	if len(bank.Questions) != 3 {
		t.Errorf("expected 3 questions, got %d", len(bank.Questions))
	}
	if bank.TotalScore() != 15 {
		t.Errorf("expected total score 15, got %d", bank.TotalScore())
	}
}

func TestAppend_SkipsDuplicateCheck(t *testing.T) {
	bank := questionbank.New("Go")

	if err := bank.Add(fill("What is a slice?")); err != nil {
		t.Fatal(err)
	}
	if err := bank.Append(fill("What is a slice?")); err != nil {
		t.Fatalf("expected append to accept a duplicate, got %v", err)
	}
	if err := bank.Append(question.Question{Title: "x", Variant: question.Fill{}}); err == nil {
		t.Error("expected append to reject an invalid question")
	}
	if len(bank.Questions) != 2 {
		t.Errorf("expected 2 questions, got %d", len(bank.Questions))
	}
}

func TestSimilarity(t *testing.T) {
	bank := questionbank.New("Go")

	if got := bank.Similarity("anything"); got != 0 {
		t.Errorf("expected 0 for an empty bank, got %v", got)
	}

	if err := bank.Add(fill("什么是闭包")); err != nil {
		t.Fatal(err)
	}
	if err := bank.Add(fill("What is a slice?")); err != nil {
		t.Fatal(err)
	}

	if got := bank.Similarity("What is a slice?"); got != 1 {
		t.Errorf("expected 1 for an accepted title, got %v", got)
	}
	if got := bank.Similarity("什么是"); got != 0.6 {
		t.Errorf("expected 0.6, got %v", got)
	}
}
