// internal/service/practice.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/remaimber-it/quizcore/internal/domain/question"
	"github.com/remaimber-it/quizcore/internal/domain/questionbank"
	"github.com/remaimber-it/quizcore/internal/examparse"
	"github.com/remaimber-it/quizcore/internal/questiongen"
)

// MaxReseeds bounds how many default candidates are drawn for a position
// before the last one is accepted even if it collides.
const MaxReseeds = 16

var ErrSourceExhausted = errors.New("source has no more outputs")

// Source yields raw model output for one question position and attempt.
type Source interface {
	Next(ctx context.Context, t question.Type, index, attempt int) (string, error)
}

// ReplaySource replays caller-supplied outputs in order, one per call.
type ReplaySource struct {
	mu      sync.Mutex
	outputs []string
	next    int
}

func NewReplaySource(outputs ...string) *ReplaySource {
	return &ReplaySource{outputs: outputs}
}

func (r *ReplaySource) Next(_ context.Context, _ question.Type, _, _ int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.next >= len(r.outputs) {
		return "", ErrSourceExhausted
	}
	out := r.outputs[r.next]
	r.next++
	return out, nil
}

type PracticeRequest struct {
	Topic      string
	Type       question.Type
	Difficulty string
	Count      int
}

// PracticeResult is the generated batch and where its questions came from.
type PracticeResult struct {
	Bank      *questionbank.QuestionBank
	Generated int // recovered from model output
	Defaults  int // filled in by the default generator
}

// PracticeService builds a batch one question at a time, rejecting invalid
// and near-duplicate items.
type PracticeService struct {
	parser      *examparse.Parser
	gen         *questiongen.Generator
	maxAttempts int
	logger      *slog.Logger
}

func NewPracticeService(p *examparse.Parser, gen *questiongen.Generator, maxAttempts int, logger *slog.Logger) *PracticeService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PracticeService{parser: p, gen: gen, maxAttempts: maxAttempts, logger: logger}
}

// Generate fills req.Count positions. Each position asks src for up to
// maxAttempts outputs; when none yields a valid, distinct question of the
// requested type, a default takes its place.
func (ps *PracticeService) Generate(ctx context.Context, req PracticeRequest, src Source) (*PracticeResult, error) {
	res := &PracticeResult{Bank: questionbank.New(req.Topic)}

	for i := 0; i < req.Count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if ps.fromSource(ctx, req, src, i, res.Bank) {
			res.Generated++
			continue
		}

		if err := ps.fallback(req, i, res.Bank); err != nil {
			return nil, err
		}
		res.Defaults++
	}

	ps.logger.Info("practice batch generated",
		"topic", req.Topic,
		"type", req.Type,
		"generated", res.Generated,
		"defaults", res.Defaults,
	)
	return res, nil
}

func (ps *PracticeService) fromSource(ctx context.Context, req PracticeRequest, src Source, i int, bank *questionbank.QuestionBank) bool {
	if src == nil {
		return false
	}

	for attempt := 0; attempt < ps.maxAttempts; attempt++ {
		raw, err := src.Next(ctx, req.Type, i, attempt)
		if err != nil {
			ps.logger.Debug("source returned no output", "index", i, "attempt", attempt, "error", err)
			return false
		}

		q, _, ok := ps.parser.ParseQuestion(raw, req.Type)
		if !ok || q.Type() != req.Type {
			ps.logger.Debug("discarding unusable output", "index", i, "attempt", attempt)
			continue
		}

		q.ID = i + 1
		if q.Difficulty == "" {
			q.Difficulty = req.Difficulty
		}

		if err := bank.Add(q); err != nil {
			ps.logger.Debug("rejected generated question", "index", i, "attempt", attempt, "error", err)
			continue
		}
		return true
	}
	return false
}

// fallback draws reseeded defaults until one is distinct. After MaxReseeds
// collisions it keeps the draw least similar to the bank, numbering its
// title when it would otherwise repeat an accepted one exactly.
func (ps *PracticeService) fallback(req PracticeRequest, i int, bank *questionbank.QuestionBank) error {
	var best question.Question
	bestRatio := math.Inf(1)

	for attempt := 0; attempt < MaxReseeds; attempt++ {
		q := ps.gen.Reseed(req.Type, req.Topic, req.Difficulty, i, attempt)
		err := bank.Add(q)
		if err == nil {
			return nil
		}
		if !errors.Is(err, questionbank.ErrDuplicate) {
			return err
		}
		if r := bank.Similarity(q.Title); r < bestRatio {
			best, bestRatio = q, r
		}
	}

	// Longer tags eventually outgrow every accepted title, so this ends.
	base := best.Title
	for n := i + 1; bank.Similarity(best.Title) >= 1; n++ {
		best.Title = fmt.Sprintf("%s (#%d)", base, n)
	}

	ps.logger.Warn("default question still collides after reseeding", "index", i, "title", best.Title)
	return bank.Append(best)
}
