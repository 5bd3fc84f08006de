package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"lyro/internal/model"
	"lyro/internal/service"
)

// NBTHandler handles NBT test endpoints
type NBTHandler struct {
	nbtSvc *service.NBTService
}

// NewNBTHandler creates a new NBT handler
func NewNBTHandler(nbtSvc *service.NBTService) *NBTHandler {
	return &NBTHandler{nbtSvc: nbtSvc}
}

// TestRequest is the request body for creating or updating a test
type TestRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	AvailableFrom   string `json:"availableFrom"`
	AvailableUntil  string `json:"availableUntil"`
	DurationMinutes int    `json:"durationMinutes"`
}

// QuestionRequest is the request body for one NBT question. Content and
// type fields accept a scalar or a list; option slots are indexed 0-3.
type QuestionRequest struct {
	QuestionContent     model.StringOrList   `json:"questionContent"`
	QuestionContentType model.StringOrList   `json:"questionContentType"`
	Options             []model.StringOrList `json:"options"`
	OptionsType         []model.StringOrList `json:"optionsType"`
	CorrectOptionIndex  int                  `json:"correctOptionIndex"`
}

func (req *QuestionRequest) toInput() service.NBTQuestionInput {
	options := make([][]string, len(req.Options))
	for i, slot := range req.Options {
		options[i] = []string(slot)
	}
	optionTypes := make([][]string, len(req.OptionsType))
	for i, slot := range req.OptionsType {
		optionTypes[i] = []string(slot)
	}
	return service.NBTQuestionInput{
		QuestionContent:      []string(req.QuestionContent),
		QuestionContentTypes: []string(req.QuestionContentType),
		Options:              options,
		OptionTypes:          optionTypes,
		CorrectOptionIndex:   req.CorrectOptionIndex,
	}
}

// decodeQuestionInput reads a question payload from either a JSON body or
// an admin console form post
func decodeQuestionInput(r *http.Request) (service.NBTQuestionInput, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req QuestionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return service.NBTQuestionInput{}, err
		}
		return req.toInput(), nil
	}

	if err := r.ParseForm(); err != nil {
		return service.NBTQuestionInput{}, err
	}

	input := service.NBTQuestionInput{
		QuestionContent:      r.PostForm["questionContent"],
		QuestionContentTypes: r.PostForm["questionContentType"],
		Options:              make([][]string, model.OptionCount),
		OptionTypes:          make([][]string, model.OptionCount),
	}
	for i := 0; i < model.OptionCount; i++ {
		input.Options[i] = r.PostForm[fmt.Sprintf("options[%d]", i)]
		input.OptionTypes[i] = r.PostForm[fmt.Sprintf("optionsType[%d]", i)]
	}
	input.CorrectOptionIndex, _ = strconv.Atoi(r.PostForm.Get("correctOptionIndex"))

	return input, nil
}

// ListAvailable handles GET /v1/tests
func (h *NBTHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	tests, err := h.nbtSvc.ListAvailable(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"tests": tests})
}

// Get handles GET /v1/tests/{id}
func (h *NBTHandler) Get(w http.ResponseWriter, r *http.Request) {
	test, err := h.nbtSvc.GetTest(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, service.ErrTestNotFound) {
		writeError(w, http.StatusNotFound, "test not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, test)
}

// List handles GET /v1/admin/tests
func (h *NBTHandler) List(w http.ResponseWriter, r *http.Request) {
	tests, err := h.nbtSvc.ListTests(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"tests": tests})
}

// Create handles POST /v1/admin/tests
func (h *NBTHandler) Create(w http.ResponseWriter, r *http.Request) {
	test, err := decodeTestRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.nbtSvc.CreateTest(r.Context(), test)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"testId": id})
}

// Update handles PUT /v1/admin/tests/{id}
func (h *NBTHandler) Update(w http.ResponseWriter, r *http.Request) {
	meta, err := decodeTestRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	test, err := h.nbtSvc.UpdateTestMeta(r.Context(), mux.Vars(r)["id"], meta)
	if errors.Is(err, service.ErrTestNotFound) {
		writeError(w, http.StatusNotFound, "test not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, test)
}

// Delete handles DELETE /v1/admin/tests/{id}
func (h *NBTHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.nbtSvc.DeleteTest(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AppendQuestion handles POST /v1/admin/tests/{id}/questions
func (h *NBTHandler) AppendQuestion(w http.ResponseWriter, r *http.Request) {
	input, err := decodeQuestionInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question, err := h.nbtSvc.AppendQuestion(r.Context(), mux.Vars(r)["id"], input)
	if errors.Is(err, service.ErrTestNotFound) {
		writeError(w, http.StatusNotFound, "test not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusCreated, question)
}

// UpdateQuestion handles PUT /v1/admin/tests/{id}/questions/{index}.
// The index is translated to the question's stable id before mutating, so
// the route stays compatible with position-addressed clients.
func (h *NBTHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid question index")
		return
	}

	input, err := decodeQuestionInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	questionID, err := h.nbtSvc.QuestionIDAt(r.Context(), vars["id"], index)
	if err != nil {
		writeQuestionError(w, err)
		return
	}

	question, err := h.nbtSvc.UpdateQuestion(r.Context(), vars["id"], questionID, input)
	if err != nil {
		writeQuestionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, question)
}

// RemoveQuestion handles DELETE /v1/admin/tests/{id}/questions/{index}
func (h *NBTHandler) RemoveQuestion(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid question index")
		return
	}

	questionID, err := h.nbtSvc.QuestionIDAt(r.Context(), vars["id"], index)
	if err != nil {
		writeQuestionError(w, err)
		return
	}

	if err := h.nbtSvc.RemoveQuestion(r.Context(), vars["id"], questionID); err != nil {
		writeQuestionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func writeQuestionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTestNotFound):
		writeError(w, http.StatusNotFound, "test not found")
	case errors.Is(err, service.ErrQuestionNotFound):
		writeError(w, http.StatusNotFound, "question not found")
	default:
		writeError(w, http.StatusInternalServerError, "server error")
	}
}

func decodeTestRequest(r *http.Request) (*model.NBTTest, error) {
	var req TestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.New("invalid request body")
	}
	if req.Title == "" {
		return nil, errors.New("title is required")
	}

	test := &model.NBTTest{
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
	}

	var err error
	if test.AvailableFrom, err = parseInstant(req.AvailableFrom); err != nil {
		return nil, errors.New("invalid availableFrom")
	}
	if test.AvailableUntil, err = parseInstant(req.AvailableUntil); err != nil {
		return nil, errors.New("invalid availableUntil")
	}

	return test, nil
}

// parseInstant accepts RFC 3339 or the datetime-local format the admin
// console submits
func parseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04", s)
}
