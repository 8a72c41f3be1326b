package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/remaimber-it/quizcore/internal/domain/practice"
	"github.com/remaimber-it/quizcore/internal/domain/question"
	"github.com/remaimber-it/quizcore/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateEvaluationRequest struct {
	Topic     string              `json:"topic" example:"closures"`
	Questions []question.Question `json:"questions"`
	Answers   []string            `json:"answers"`
	TimeUsed  int                 `json:"time_used" example:"300"` // seconds
}

func (r *CreateEvaluationRequest) Validate() error {
	if len(r.Questions) == 0 {
		return errors.New("questions are required")
	}
	if len(r.Answers) > len(r.Questions) {
		return errors.New("more answers than questions")
	}
	return nil
}

type EvaluationItemResponse struct {
	ID               string `json:"id"`
	QuestionID       int    `json:"question_id" example:"1"`
	Type             string `json:"type" example:"fill"`
	Title            string `json:"title"`
	UserAnswer       string `json:"user_answer"`
	CorrectAnswer    string `json:"correct_answer"`
	IsCorrect        bool   `json:"is_correct"`
	Score            int    `json:"score" example:"10"`
	MaxScore         int    `json:"max_score" example:"10"`
	Feedback         string `json:"feedback"`
	Explanation      string `json:"explanation,omitempty"`
	DetailedAnalysis string `json:"detailed_analysis"`
	Suggestion       string `json:"suggestion"`
	NeedsAnalysis    bool   `json:"needs_ai_analysis"`
}

type EvaluationResponse struct {
	ID           string                   `json:"id"`
	Topic        string                   `json:"topic" example:"closures"`
	TotalScore   int                      `json:"total_score" example:"30"`
	MaxScore     int                      `json:"max_score" example:"50"`
	CorrectCount int                      `json:"correct_count" example:"3"`
	Accuracy     float64                  `json:"accuracy" example:"60"`
	Grade        string                   `json:"grade" example:"pass"`
	Suggestion   string                   `json:"suggestion"`
	TimeUsed     int                      `json:"time_used" example:"300"`
	CreatedAt    time.Time                `json:"created_at"`
	Items        []EvaluationItemResponse `json:"items"`
}

type ItemStatusResponse struct {
	ItemID        string `json:"item_id"`
	Position      int    `json:"position"`
	NeedsAnalysis bool   `json:"needs_ai_analysis"`
}

type EvaluationStatusResponse struct {
	EvaluationID string               `json:"evaluation_id"`
	AllCompleted bool                 `json:"all_completed"`
	Items        []ItemStatusResponse `json:"items"`
}

func toEvaluationResponse(e *practice.Evaluation) EvaluationResponse {
	items := make([]EvaluationItemResponse, len(e.Items))
	for i, it := range e.Items {
		items[i] = EvaluationItemResponse{
			ID:               it.ID,
			QuestionID:       it.QuestionID,
			Type:             it.Type,
			Title:            it.Title,
			UserAnswer:       it.UserAnswer,
			CorrectAnswer:    it.CorrectAnswer,
			IsCorrect:        it.IsCorrect,
			Score:            it.Score,
			MaxScore:         it.MaxScore,
			Feedback:         it.Feedback,
			Explanation:      it.Explanation,
			DetailedAnalysis: it.DetailedAnalysis,
			Suggestion:       it.Suggestion,
			NeedsAnalysis:    it.NeedsAnalysis,
		}
	}

	return EvaluationResponse{
		ID:           e.ID,
		Topic:        e.Topic,
		TotalScore:   e.TotalScore,
		MaxScore:     e.MaxScore,
		CorrectCount: e.CorrectCount,
		Accuracy:     e.Accuracy,
		Grade:        e.Grade,
		Suggestion:   e.Suggestion,
		TimeUsed:     e.TimeUsed,
		CreatedAt:    e.CreatedAt,
		Items:        items,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// createEvaluation grades a practice attempt.
// @Summary      Evaluate a practice attempt
// @Description  Grades every answer immediately. Detailed analysis is filled in asynchronously; poll the status endpoint to see when it is complete.
// @Tags         Evaluations
// @Accept       json
// @Produce      json
// @Param        body  body      CreateEvaluationRequest  true  "Questions and answers"
// @Success      201   {object}  EvaluationResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /evaluations [post]
func (h *Handler) createEvaluation(w http.ResponseWriter, r *http.Request) {
	var req CreateEvaluationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	e, err := h.evaluations.Evaluate(r.Context(), service.EvaluationRequest{
		Topic:     req.Topic,
		Questions: req.Questions,
		Answers:   req.Answers,
		TimeUsed:  req.TimeUsed,
	})
	if err != nil {
		h.logger.Error("evaluation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to evaluate answers")
		return
	}

	respondJSON(w, http.StatusCreated, toEvaluationResponse(e))
}

// getEvaluation returns a stored evaluation.
// @Summary      Get an evaluation
// @Tags         Evaluations
// @Produce      json
// @Param        evaluationID  path      string  true  "Evaluation ID"
// @Success      200           {object}  EvaluationResponse
// @Failure      404           {object}  map[string]string
// @Failure      500           {object}  map[string]string
// @Router       /evaluations/{evaluationID} [get]
func (h *Handler) getEvaluation(w http.ResponseWriter, r *http.Request) {
	e, err := h.evaluations.Get(r.Context(), r.PathValue("evaluationID"))
	if h.handleStoreError(w, err, "evaluation") {
		return
	}

	respondJSON(w, http.StatusOK, toEvaluationResponse(e))
}

// getEvaluationStatus reports analysis progress.
// @Summary      Get analysis status
// @Description  Per-item flag telling whether detailed analysis is still pending.
// @Tags         Evaluations
// @Produce      json
// @Param        evaluationID  path      string  true  "Evaluation ID"
// @Success      200           {object}  EvaluationStatusResponse
// @Failure      404           {object}  map[string]string
// @Failure      500           {object}  map[string]string
// @Router       /evaluations/{evaluationID}/status [get]
func (h *Handler) getEvaluationStatus(w http.ResponseWriter, r *http.Request) {
	evaluationID := r.PathValue("evaluationID")

	statuses, all, err := h.evaluations.Status(r.Context(), evaluationID)
	if h.handleStoreError(w, err, "evaluation") {
		return
	}

	items := make([]ItemStatusResponse, len(statuses))
	for i, st := range statuses {
		items[i] = ItemStatusResponse{
			ItemID:        st.ItemID,
			Position:      st.Position,
			NeedsAnalysis: st.NeedsAnalysis,
		}
	}

	respondJSON(w, http.StatusOK, EvaluationStatusResponse{
		EvaluationID: evaluationID,
		AllCompleted: all,
		Items:        items,
	})
}
