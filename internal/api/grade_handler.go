package api

import (
	"errors"
	"net/http"

	"github.com/remaimber-it/quizcore/internal/grader"
)

// ── Request / Response types ────────────────────────────────────────────────

type GradeRequest struct {
	grader.Input
}

func (r *GradeRequest) Validate() error {
	if r.QuestionType == "" {
		return errors.New("questionType is required")
	}
	return nil
}

// ── Handlers ────────────────────────────────────────────────────────────────

// grade judges one answer against its reference answer.
// @Summary      Grade an answer
// @Description  Deterministic all-or-nothing verdict for a single answer.
// @Tags         Grading
// @Accept       json
// @Produce      json
// @Param        body  body      GradeRequest  true  "Grading triple"
// @Success      200   {object}  grader.Result
// @Failure      400   {object}  map[string]string
// @Router       /grade [post]
func (h *Handler) grade(w http.ResponseWriter, r *http.Request) {
	var req GradeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	respondJSON(w, http.StatusOK, h.grader.Grade(req.Input))
}
