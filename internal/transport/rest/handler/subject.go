package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"lyro/internal/model"
	"lyro/internal/service"
)

// SubjectHandler handles subject and topic endpoints
type SubjectHandler struct {
	subjectSvc *service.SubjectService
}

// NewSubjectHandler creates a new subject handler
func NewSubjectHandler(subjectSvc *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectSvc: subjectSvc}
}

// List handles GET /v1/subjects, optionally filtered by ?grade=
func (h *SubjectHandler) List(w http.ResponseWriter, r *http.Request) {
	grade, _ := strconv.Atoi(r.URL.Query().Get("grade"))

	subjects, err := h.subjectSvc.ListSubjects(r.Context(), grade)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"subjects": subjects})
}

// Create handles POST /v1/admin/subjects
func (h *SubjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var subject model.Subject
	if err := json.NewDecoder(r.Body).Decode(&subject); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	subject.ID = ""

	id, err := h.subjectSvc.CreateSubject(r.Context(), &subject)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"subjectId": id})
}

// Delete handles DELETE /v1/admin/subjects/{id}
func (h *SubjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.subjectSvc.DeleteSubject(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Topics handles GET /v1/subjects/{id}/topics
func (h *SubjectHandler) Topics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.subjectSvc.TopicsForSubject(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"topics": topics})
}

// CreateTopic handles POST /v1/admin/topics
func (h *SubjectHandler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	var topic model.Topic
	if err := json.NewDecoder(r.Body).Decode(&topic); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	topic.ID = ""

	id, err := h.subjectSvc.CreateTopic(r.Context(), &topic)
	if errors.Is(err, service.ErrSubjectNotFound) {
		writeError(w, http.StatusNotFound, "subject not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"topicId": id})
}

// DeleteTopic handles DELETE /v1/admin/topics/{id}
func (h *SubjectHandler) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	err := h.subjectSvc.DeleteTopic(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, service.ErrTopicNotFound) {
		writeError(w, http.StatusNotFound, "topic not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
