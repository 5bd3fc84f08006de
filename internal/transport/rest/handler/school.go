package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"lyro/internal/model"
	"lyro/internal/service"
)

// SchoolHandler handles school endpoints
type SchoolHandler struct {
	schoolSvc *service.SchoolService
}

// NewSchoolHandler creates a new school handler
func NewSchoolHandler(schoolSvc *service.SchoolService) *SchoolHandler {
	return &SchoolHandler{schoolSvc: schoolSvc}
}

// List handles GET /v1/schools
func (h *SchoolHandler) List(w http.ResponseWriter, r *http.Request) {
	schools, err := h.schoolSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"schools": schools})
}

// Create handles POST /v1/admin/schools
func (h *SchoolHandler) Create(w http.ResponseWriter, r *http.Request) {
	var school model.School
	if err := json.NewDecoder(r.Body).Decode(&school); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	school.ID = ""

	id, err := h.schoolSvc.Create(r.Context(), &school)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"schoolId": id})
}

// Delete handles DELETE /v1/admin/schools/{id}
func (h *SchoolHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.schoolSvc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
