package id_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/remaimber-it/quizcore/internal/id"
)

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := id.GenerateID()
		if _, err := uuid.Parse(s); err != nil {
			t.Fatalf("expected a UUID, got %q: %v", s, err)
		}
		if seen[s] {
			t.Fatalf("duplicate id %q", s)
		}
		seen[s] = true
	}
}
