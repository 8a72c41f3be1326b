// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/remaimber-it/quizcore/internal/examparse"
	"github.com/remaimber-it/quizcore/internal/grader"
	"github.com/remaimber-it/quizcore/internal/service"
	"github.com/remaimber-it/quizcore/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	parser      *examparse.Parser
	grader      grader.Grader
	practice    *service.PracticeService
	evaluations *service.EvaluationService
	logger      *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(p *examparse.Parser, g grader.Grader, ps *service.PracticeService, es *service.EvaluationService, logger *slog.Logger) *Handler {
	return &Handler{
		parser:      p,
		grader:      g,
		practice:    ps,
		evaluations: es,
		logger:      logger,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes {"error": msg} with the given status code.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

type validator interface {
	Validate() error
}

// decodeAndValidate decodes the request body into v and runs its
// Validate method. On failure it writes a 400 and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v validator) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return false
	}
	if err := v.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleStoreError checks for common store errors and writes the appropriate
// HTTP response. Returns true if an error was handled (caller should return).
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, entity+" not found")
		return true
	}
	h.logger.Error("store error", "error", err, "entity", entity)
	respondError(w, http.StatusInternalServerError, "internal error")
	return true
}
