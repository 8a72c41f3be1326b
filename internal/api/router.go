// internal/api/router.go
package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Exams
	mux.HandleFunc("POST /exams/parse", h.parseExam)

	// Practice
	mux.HandleFunc("POST /practice/generate", h.generatePractice)

	// Grading
	mux.HandleFunc("POST /grade", h.grade)

	// Evaluations
	mux.HandleFunc("POST /evaluations", h.createEvaluation)
	mux.HandleFunc("GET /evaluations/{evaluationID}", h.getEvaluation)
	mux.HandleFunc("GET /evaluations/{evaluationID}/status", h.getEvaluationStatus)
}
