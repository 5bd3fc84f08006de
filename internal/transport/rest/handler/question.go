package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"lyro/internal/model"
	"lyro/internal/service"
)

// QuestionHandler handles practice question endpoints
type QuestionHandler struct {
	questionSvc *service.QuestionService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionSvc *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionSvc: questionSvc}
}

// Practice handles GET /v1/questions/practice
//
// Query parameters: topic (required), paper, subject, grade. A request
// without a topic falls back to the full bank listing instead of failing.
func (h *QuestionHandler) Practice(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := service.PracticeQuery{
		Topic:   params.Get("topic"),
		Paper:   params.Get("paper"),
		Subject: params.Get("subject"),
		Grade:   params.Get("grade"),
	}

	questions, err := h.questionSvc.Practice(r.Context(), query)
	if errors.Is(err, service.ErrTopicRequired) {
		questions, err = h.questionSvc.GetAll(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

// Create handles POST /v1/admin/questions
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var question model.Question
	if err := json.NewDecoder(r.Body).Decode(&question); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	question.ID = ""

	if err := h.questionSvc.Create(r.Context(), &question); err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusCreated, question)
}

// List handles GET /v1/admin/questions
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questionSvc.GetAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

// Get handles GET /v1/admin/questions/{id}
func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	question, err := h.questionSvc.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if question == nil {
		writeError(w, http.StatusNotFound, "question not found")
		return
	}

	writeJSON(w, http.StatusOK, question)
}

// Update handles PUT /v1/admin/questions/{id}
func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var question model.Question
	if err := json.NewDecoder(r.Body).Decode(&question); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	question.ID = mux.Vars(r)["id"]

	if err := h.questionSvc.Update(r.Context(), &question); err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, question)
}

// Delete handles DELETE /v1/admin/questions/{id}
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.questionSvc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
