package api

import (
	"errors"
	"net/http"

	"github.com/remaimber-it/quizcore/internal/domain/question"
	"github.com/remaimber-it/quizcore/internal/service"
)

// MaxPracticeCount caps the questions requested in one batch.
const MaxPracticeCount = 50

// ── Request / Response types ────────────────────────────────────────────────

type GeneratePracticeRequest struct {
	Topic      string   `json:"topic" example:"closures"`
	Type       string   `json:"type" example:"fill"`
	Difficulty string   `json:"difficulty,omitempty" example:"medium"`
	Count      int      `json:"count" example:"5"`
	Outputs    []string `json:"outputs,omitempty"` // raw model outputs, consumed in order
}

func (r *GeneratePracticeRequest) Validate() error {
	if r.Topic == "" {
		return errors.New("topic is required")
	}
	if _, ok := question.ParseType(r.Type); !ok {
		return errors.New("unknown question type " + r.Type)
	}
	if r.Count < 1 || r.Count > MaxPracticeCount {
		return errors.New("count must be between 1 and 50")
	}
	return nil
}

type GeneratePracticeResponse struct {
	BankID     string              `json:"bank_id"`
	Topic      string              `json:"topic" example:"closures"`
	Questions  []question.Question `json:"questions"`
	TotalScore int                 `json:"total_score" example:"50"`
	Generated  int                 `json:"generated" example:"4"`
	Defaults   int                 `json:"defaults" example:"1"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// generatePractice builds a batch of distinct practice questions.
// @Summary      Generate practice questions
// @Description  Builds a batch one question at a time from the supplied model outputs, regenerating on duplicates and falling back to default questions.
// @Tags         Practice
// @Accept       json
// @Produce      json
// @Param        body  body      GeneratePracticeRequest  true  "Batch request"
// @Success      200   {object}  GeneratePracticeResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /practice/generate [post]
func (h *Handler) generatePractice(w http.ResponseWriter, r *http.Request) {
	var req GeneratePracticeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	t, _ := question.ParseType(req.Type)
	res, err := h.practice.Generate(r.Context(), service.PracticeRequest{
		Topic:      req.Topic,
		Type:       t,
		Difficulty: req.Difficulty,
		Count:      req.Count,
	}, service.NewReplaySource(req.Outputs...))
	if err != nil {
		h.logger.Error("practice generation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to generate questions")
		return
	}

	respondJSON(w, http.StatusOK, GeneratePracticeResponse{
		BankID:     res.Bank.ID,
		Topic:      res.Bank.Subject,
		Questions:  res.Bank.Questions,
		TotalScore: res.Bank.TotalScore(),
		Generated:  res.Generated,
		Defaults:   res.Defaults,
	})
}
