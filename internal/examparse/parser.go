// Package examparse turns raw model output into exam documents. It tries a
// strict parse first and then a fixed chain of salvage strategies, and falls
// back to templated default questions when nothing can be recovered. Parse
// never fails: every call returns schema-valid questions plus diagnostics.
package examparse

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/remaimber-it/quizcore/internal/domain/question"
	"github.com/remaimber-it/quizcore/internal/questiongen"
	"github.com/remaimber-it/quizcore/internal/salvage"
)

// DefaultField is the document key holding the item array.
const DefaultField = "questions"

// MaxRawResponse bounds the raw text echoed back on total failure.
const MaxRawResponse = 500

type Shape int

const (
	// ShapeItems is a document with an array of items under Request.Field.
	ShapeItems Shape = iota
	// ShapeObject is a single item object.
	ShapeObject
)

// Request describes the output the caller expects.
type Request struct {
	Shape   Shape
	Field   string
	Subject string
	// Quotas size the default questions on total failure and give the
	// expected type of each position.
	Quotas []question.Quota
	// DefaultType applies to items that carry no usable type.
	DefaultType question.Type
}

func (r Request) field() string {
	if r.Field == "" {
		return DefaultField
	}
	return r.Field
}

// slot returns the quota covering item position i, if any.
func (r Request) slot(i int) (question.Quota, bool) {
	for _, q := range r.Quotas {
		if i < q.Count {
			return q, true
		}
		i -= q.Count
	}
	return question.Quota{}, false
}

func (r Request) typeAt(i int) question.Type {
	if q, ok := r.slot(i); ok {
		if t, ok := question.ParseType(string(q.Type)); ok {
			return t
		}
	}
	if r.DefaultType != "" {
		return r.DefaultType
	}
	return question.TypeChoice
}

// Attempt records one strategy's outcome.
type Attempt struct {
	Strategy  Strategy
	Succeeded bool
	Text      string
	Err       error
}

// Result is the outcome of a parse. Document is the JSON-ready document,
// diagnostics included; Questions are the validated items it carries.
type Result struct {
	Document    map[string]any
	Questions   []question.Question
	Provenance  Strategy
	Warning     string
	Error       string
	RawResponse string
	// Replaced counts items swapped for defaults after failing validation.
	Replaced int
	Attempts []Attempt
}

// Err classifies the result: nil for a clean strict parse, otherwise one of
// ErrTruncatedInput, ErrPartialFieldRecovery or ErrMalformedInput.
func (r Result) Err() error {
	return diagnostic(r.Provenance)
}

type Options struct {
	// MaxStrategy is the latest strategy whose recovery is accepted.
	// Empty accepts every enabled strategy.
	MaxStrategy Strategy
	// LenientRepair enables a general JSON repair pass after the
	// reconstructor.
	LenientRepair bool
}

type Parser struct {
	gen           *questiongen.Generator
	reconstructor *salvage.Reconstructor
	opts          Options
	logger        *slog.Logger
}

func NewParser(gen *questiongen.Generator, opts Options, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		gen:           gen,
		reconstructor: salvage.DefaultReconstructor(),
		opts:          opts,
		logger:        logger,
	}
}

// Parse recovers a document of the requested shape from raw.
func (p *Parser) Parse(raw string, req Request) Result {
	text := salvage.SanitizeEscapes(salvage.Normalize(raw))

	var attempts []Attempt
	for _, s := range p.chain() {
		candidate, err := s.run(text, raw, req)
		if err == nil {
			var doc map[string]any
			if doc, err = decode(candidate, req); err == nil {
				attempts = append(attempts, Attempt{Strategy: s.name, Succeeded: true, Text: candidate})
				return p.accept(doc, s.name, req, attempts)
			}
		}

		p.logger.Debug("recovery strategy failed", "strategy", s.name, "error", err)
		attempts = append(attempts, Attempt{Strategy: s.name, Text: candidate, Err: err})
	}

	return p.fallback(raw, req, attempts)
}

// ParseQuestion parses a single-object response of type t. The boolean is
// true only when the model's own item was recovered intact; otherwise the
// returned question is a default.
func (p *Parser) ParseQuestion(raw string, t question.Type) (question.Question, Result, bool) {
	res := p.Parse(raw, Request{Shape: ShapeObject, DefaultType: t})
	ok := res.Provenance != StrategyDefaults && res.Replaced == 0
	return res.Questions[0], res, ok
}

// decode strictly parses a candidate and checks it has the requested shape.
func decode(candidate string, req Request) (map[string]any, error) {
	var v any
	if err := json.Unmarshal([]byte(candidate), &v); err != nil {
		return nil, err
	}

	switch req.Shape {
	case ShapeObject:
		return objectOf(v, req.field())
	default:
		return itemsOf(v, req.field())
	}
}

func itemsOf(v any, field string) (map[string]any, error) {
	doc, ok := v.(map[string]any)
	if !ok {
		arr, isArr := v.([]any)
		if !isArr {
			return nil, errors.New("document is neither an object nor an array")
		}
		doc = map[string]any{field: arr}
	}

	items, ok := doc[field].([]any)
	if !ok || len(items) == 0 {
		return nil, fmt.Errorf("document has no items under %q", field)
	}
	return doc, nil
}

func objectOf(v any, field string) (map[string]any, error) {
	switch x := v.(type) {
	case map[string]any:
		// Reconstruction wraps single items the same way it wraps lists.
		if items, ok := x[field].([]any); ok && len(x) == 1 {
			return objectOf(items, field)
		}
		if len(x) == 0 {
			return nil, errors.New("empty object")
		}
		return x, nil
	case []any:
		if len(x) > 0 {
			if obj, ok := x[0].(map[string]any); ok && len(obj) > 0 {
				return obj, nil
			}
		}
	}
	return nil, errors.New("document is not a non-empty object")
}

// accept converts the winning document's items and stamps provenance.
func (p *Parser) accept(doc map[string]any, s Strategy, req Request, attempts []Attempt) Result {
	res := Result{Document: doc, Provenance: s, Attempts: attempts}

	var raw []any
	if req.Shape == ShapeObject {
		raw = []any{doc}
	} else {
		raw = doc[req.field()].([]any)
	}

	res.Questions = make([]question.Question, len(raw))
	for i, item := range raw {
		q, err := p.item(item, i, req)
		if err != nil {
			p.logger.Debug("replacing invalid item", "index", i, "error", err)
			q = p.replacement(q, i, req)
			res.Replaced++
		}
		res.Questions[i] = q
	}

	if req.Shape == ShapeObject {
		res.Document = wire(res.Questions[0])
	} else {
		doc[req.field()] = res.Questions
	}

	res.Document["_provenance"] = string(s)
	if s != StrategyStrict {
		res.Warning = fmt.Sprintf("response was damaged and recovered by %s; some content may be missing", s)
		res.Document["_warning"] = res.Warning
		p.logger.Warn("recovered damaged model output",
			"strategy", s,
			"items", len(res.Questions),
			"replaced", res.Replaced,
		)
	}

	return res
}

// item decodes one element, cleaning markup out of its text.
func (p *Parser) item(v any, i int, req Request) (question.Question, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return question.Question{}, &question.MismatchError{Type: req.typeAt(i), Field: "object"}
	}

	q, err := question.FromMap(m, req.typeAt(i))
	if err != nil {
		return q, err
	}
	q = q.MapText(cleanMarkup)

	if q.Score <= 0 {
		q.Score = req.scoreAt(i)
	}
	if q.ID == 0 {
		q.ID = i + 1
	}
	return q, q.Validate()
}

// replacement builds a default for position i that keeps what the broken
// item got right: its type, id and score.
func (p *Parser) replacement(broken question.Question, i int, req Request) question.Question {
	t := broken.Type()
	if t == "" {
		t = req.typeAt(i)
	}

	difficulty := broken.Difficulty
	if quota, ok := req.slot(i); ok && difficulty == "" {
		difficulty = quota.Difficulty
	}

	q := p.gen.Question(t, req.Subject, difficulty, i)
	if broken.ID != 0 {
		q.ID = broken.ID
	}
	q.Score = broken.Score
	if q.Score <= 0 {
		q.Score = req.scoreAt(i)
	}
	return q
}

func (r Request) scoreAt(i int) int {
	if q, ok := r.slot(i); ok && q.Score > 0 {
		return q.Score
	}
	return question.DefaultScore
}

// fallback synthesizes a default document after every strategy failed.
func (p *Parser) fallback(raw string, req Request, attempts []Attempt) Result {
	res := Result{
		Provenance:  StrategyDefaults,
		Error:       "model response could not be parsed; default questions were generated",
		RawResponse: truncateRaw(raw),
		Attempts:    attempts,
	}

	if req.Shape == ShapeObject || len(req.Quotas) == 0 {
		res.Questions = []question.Question{p.gen.Question(req.typeAt(0), req.Subject, "", 0)}
	} else {
		res.Questions = p.gen.Defaults(req.Subject, normalizeQuotas(req.Quotas))
	}

	if req.Shape == ShapeObject {
		res.Document = wire(res.Questions[0])
	} else {
		res.Document = map[string]any{req.field(): res.Questions}
	}
	res.Document["error"] = res.Error
	res.Document["rawResponse"] = res.RawResponse
	res.Document["_provenance"] = string(StrategyDefaults)

	p.logger.Error("model output unrecoverable, using defaults",
		"attempts", len(attempts),
		"questions", len(res.Questions),
	)
	return res
}

func normalizeQuotas(quotas []question.Quota) []question.Quota {
	out := make([]question.Quota, len(quotas))
	for i, q := range quotas {
		if t, ok := question.ParseType(string(q.Type)); ok {
			q.Type = t
		}
		out[i] = q
	}
	return out
}

// truncateRaw cuts raw to at most MaxRawResponse characters, the last
// three of which mark the cut.
func truncateRaw(raw string) string {
	if utf8.RuneCountInString(raw) <= MaxRawResponse {
		return raw
	}
	return string([]rune(raw)[:MaxRawResponse-3]) + "..."
}

// wire renders a question as a generic document.
func wire(q question.Question) map[string]any {
	data, err := json.Marshal(q)
	if err != nil {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return map[string]any{}
	}
	return m
}
