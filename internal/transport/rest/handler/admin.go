package handler

import (
	"net/http"
	"strconv"

	"riskwatch/internal/service"
)

// AdminHandler handles dashboard and alert feed endpoints
type AdminHandler struct {
	analyticsSvc *service.AnalyticsService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(analyticsSvc *service.AnalyticsService) *AdminHandler {
	return &AdminHandler{analyticsSvc: analyticsSvc}
}

// Analytics handles GET /v1/admin/analytics
func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analyticsSvc.Summary(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Audit handles GET /v1/admin/audit?limit=
func (h *AdminHandler) Audit(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.analyticsSvc.AuditTrail(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, logs)
}

// RecentAlerts handles GET /v1/alerts/recent?limit=
func (h *AdminHandler) RecentAlerts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}

	alerts, err := h.analyticsSvc.RecentAlerts(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, alerts)
}
