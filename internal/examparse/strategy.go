package examparse

import (
	"errors"

	"github.com/kaptinlin/jsonrepair"

	"github.com/remaimber-it/quizcore/internal/domain/question"
	"github.com/remaimber-it/quizcore/internal/salvage"
)

// Strategy names a recovery step. Its value is what lands in the
// _provenance field of a parsed document.
type Strategy string

const (
	StrategyStrict          Strategy = "strict"
	StrategyTruncation      Strategy = "truncation"
	StrategyFieldExtraction Strategy = "field_extraction"
	StrategyReconstruction  Strategy = "reconstruction"
	StrategyLabeledText     Strategy = "labeled_text"
	StrategyLenientRepair   Strategy = "lenient_repair"
	StrategyDefaults        Strategy = "defaults"
)

// Diagnostic errors. They classify a Result and are never returned by
// Parse itself.
var (
	ErrMalformedInput       = errors.New("malformed input")
	ErrTruncatedInput       = errors.New("truncated input")
	ErrPartialFieldRecovery = errors.New("partial field recovery")
	ErrStructuralMismatch   = question.ErrStructuralMismatch

	errNoCandidate   = errors.New("strategy found nothing to recover")
	errNotApplicable = errors.New("strategy does not apply to this shape")
)

// ParseStrategy validates a strategy name. The empty string is accepted
// and means no limit.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(s); st {
	case "", StrategyStrict, StrategyTruncation, StrategyFieldExtraction,
		StrategyReconstruction, StrategyLabeledText, StrategyLenientRepair:
		return st, nil
	}
	return "", errors.New("unknown recovery strategy " + s)
}

// rank orders strategies for the strictness threshold.
func rank(s Strategy) int {
	switch s {
	case StrategyStrict:
		return 0
	case StrategyTruncation:
		return 1
	case StrategyFieldExtraction:
		return 2
	case StrategyReconstruction:
		return 3
	case StrategyLabeledText:
		return 4
	case StrategyLenientRepair:
		return 5
	default:
		return 6
	}
}

// step turns normalized text into a candidate document for strict parsing.
type step struct {
	name Strategy
	run  func(text, raw string, req Request) (string, error)
}

func (p *Parser) chain() []step {
	steps := []step{
		{StrategyStrict, func(text, _ string, _ Request) (string, error) {
			return text, nil
		}},
		{StrategyTruncation, func(text, _ string, _ Request) (string, error) {
			out, ok := salvage.RecoverTruncated(text)
			if !ok {
				return "", errNoCandidate
			}
			return out, nil
		}},
		{StrategyFieldExtraction, func(text, _ string, req Request) (string, error) {
			if req.Shape != ShapeItems {
				return "", errNotApplicable
			}
			out, ok := salvage.ExtractArrayField(text, req.field())
			if !ok {
				return "", errNoCandidate
			}
			return out, nil
		}},
		{StrategyReconstruction, func(text, _ string, req Request) (string, error) {
			out, ok := p.reconstructor.Reconstruct(text, req.field())
			if !ok {
				return "", errNoCandidate
			}
			return out, nil
		}},
		{StrategyLabeledText, func(_, raw string, req Request) (string, error) {
			if req.Shape != ShapeObject {
				return "", errNotApplicable
			}
			t := req.typeAt(0)
			out, ok := salvage.ParseLabeled(raw, t == question.TypeChoice || t == question.TypeMultiple)
			if !ok {
				return "", errNoCandidate
			}
			return out, nil
		}},
	}

	if p.opts.LenientRepair {
		steps = append(steps, step{StrategyLenientRepair, func(text, _ string, _ Request) (string, error) {
			return jsonrepair.JSONRepair(text)
		}})
	}

	if p.opts.MaxStrategy == "" {
		return steps
	}

	limit := rank(p.opts.MaxStrategy)
	kept := steps[:0]
	for _, s := range steps {
		if rank(s.name) <= limit {
			kept = append(kept, s)
		}
	}
	return kept
}

// diagnostic maps the winning strategy onto the error taxonomy.
func diagnostic(s Strategy) error {
	switch s {
	case StrategyStrict:
		return nil
	case StrategyTruncation:
		return ErrTruncatedInput
	case StrategyFieldExtraction, StrategyReconstruction, StrategyLabeledText, StrategyLenientRepair:
		return ErrPartialFieldRecovery
	default:
		return ErrMalformedInput
	}
}
