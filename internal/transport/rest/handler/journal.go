package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"riskwatch/internal/model"
	"riskwatch/internal/service"
	"riskwatch/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// JournalHandler handles text screening and journal endpoints
type JournalHandler struct {
	journalSvc *service.JournalService
}

// NewJournalHandler creates a new journal handler
func NewJournalHandler(journalSvc *service.JournalService) *JournalHandler {
	return &JournalHandler{journalSvc: journalSvc}
}

// Screen handles POST /v1/screen
func (h *JournalHandler) Screen(w http.ResponseWriter, r *http.Request) {
	var req model.JournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	writeJSON(w, http.StatusOK, h.journalSvc.Screen(r.Context(), req.Text))
}

// Log handles POST /v1/students/{id}/journal
func (h *JournalHandler) Log(w http.ResponseWriter, r *http.Request) {
	var req model.JournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := middleware.GetUserID(r.Context())
	entry, err := h.journalSvc.Log(r.Context(), actor, mux.Vars(r)["id"], req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// List handles GET /v1/students/{id}/journal?limit=
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.journalSvc.List(r.Context(), mux.Vars(r)["id"], limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
