package store

import (
	"context"
	"errors"

	"github.com/remaimber-it/quizcore/internal/domain/practice"
)

var (
	ErrNotFound = errors.New("not found")
)

// Store persists graded evaluations. Once saved, only the advisory text of
// an item can change, through PatchAnalysis.
type Store interface {
	SaveEvaluation(ctx context.Context, e *practice.Evaluation) error
	GetEvaluation(ctx context.Context, id string) (*practice.Evaluation, error)
	PatchAnalysis(ctx context.Context, itemID string, p practice.Patch) error
	AnalysisStatus(ctx context.Context, evaluationID string) ([]ItemStatus, error)
	Close() error
}

// ItemStatus reports whether an item is still waiting for enrichment.
type ItemStatus struct {
	ItemID        string
	Position      int
	NeedsAnalysis bool
}
