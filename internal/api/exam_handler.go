package api

import (
	"errors"
	"net/http"

	"github.com/remaimber-it/quizcore/internal/domain/question"
	"github.com/remaimber-it/quizcore/internal/examparse"
)

// ── Request / Response types ────────────────────────────────────────────────

type ParseExamRequest struct {
	Raw         string           `json:"raw"`
	Subject     string           `json:"subject" example:"Go"`
	Shape       string           `json:"shape,omitempty" example:"items"` // items or object
	Field       string           `json:"field,omitempty" example:"questions"`
	Quotas      []question.Quota `json:"quotas,omitempty"`
	DefaultType string           `json:"default_type,omitempty" example:"choice"`
}

func (r *ParseExamRequest) Validate() error {
	switch r.Shape {
	case "", "items", "object":
	default:
		return errors.New("shape must be items or object")
	}
	if r.DefaultType != "" {
		if _, ok := question.ParseType(r.DefaultType); !ok {
			return errors.New("unknown default_type " + r.DefaultType)
		}
	}
	for _, q := range r.Quotas {
		if _, ok := question.ParseType(string(q.Type)); !ok {
			return errors.New("unknown quota type " + string(q.Type))
		}
		if q.Count < 0 {
			return errors.New("quota count must not be negative")
		}
	}
	return nil
}

func (r *ParseExamRequest) toRequest() examparse.Request {
	req := examparse.Request{
		Shape:   examparse.ShapeItems,
		Field:   r.Field,
		Subject: r.Subject,
		Quotas:  r.Quotas,
	}
	if r.Shape == "object" {
		req.Shape = examparse.ShapeObject
	}
	req.DefaultType, _ = question.ParseType(r.DefaultType)
	return req
}

type AttemptResponse struct {
	Strategy  string `json:"strategy" example:"truncation"`
	Succeeded bool   `json:"succeeded"`
	Error     string `json:"error,omitempty"`
}

type ParseExamResponse struct {
	Document   map[string]any    `json:"document"`
	Provenance string            `json:"provenance" example:"strict"`
	Diagnostic string            `json:"diagnostic,omitempty" example:"truncated input"`
	Replaced   int               `json:"replaced"`
	Attempts   []AttemptResponse `json:"attempts"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// parseExam recovers an exam document from raw model output.
// @Summary      Parse model output
// @Description  Salvages an exam document from raw, possibly malformed model output. Never fails on bad input: unrecoverable text yields default questions.
// @Tags         Exams
// @Accept       json
// @Produce      json
// @Param        body  body      ParseExamRequest  true  "Raw output and expected shape"
// @Success      200   {object}  ParseExamResponse
// @Failure      400   {object}  map[string]string
// @Router       /exams/parse [post]
func (h *Handler) parseExam(w http.ResponseWriter, r *http.Request) {
	var req ParseExamRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res := h.parser.Parse(req.Raw, req.toRequest())

	attempts := make([]AttemptResponse, len(res.Attempts))
	for i, a := range res.Attempts {
		attempts[i] = AttemptResponse{Strategy: string(a.Strategy), Succeeded: a.Succeeded}
		if a.Err != nil {
			attempts[i].Error = a.Err.Error()
		}
	}

	resp := ParseExamResponse{
		Document:   res.Document,
		Provenance: string(res.Provenance),
		Replaced:   res.Replaced,
		Attempts:   attempts,
	}
	if err := res.Err(); err != nil {
		resp.Diagnostic = err.Error()
	}

	respondJSON(w, http.StatusOK, resp)
}
