package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"riskwatch/internal/model"
	"riskwatch/internal/service"

	"github.com/gorilla/mux"
)

// StudentHandler handles student record endpoints
type StudentHandler struct {
	studentSvc *service.StudentService
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(studentSvc *service.StudentService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc}
}

// Create handles POST /v1/students
func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w, err)
		return
	}

	student, err := h.studentSvc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, student)
}

// List handles GET /v1/students?skip=&limit=
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	students, err := h.studentSvc.List(r.Context(), skip, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, students)
}

// Get handles GET /v1/students/{id}
func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	student, err := h.studentSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, student)
}

// UpdateFeatures handles PUT /v1/students/{id}/features
func (h *StudentHandler) UpdateFeatures(w http.ResponseWriter, r *http.Request) {
	var fv model.FeatureVector
	if err := json.NewDecoder(r.Body).Decode(&fv); err != nil {
		writeDecodeError(w, err)
		return
	}

	student, err := h.studentSvc.UpdateFeatures(r.Context(), mux.Vars(r)["id"], fv)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, student)
}
