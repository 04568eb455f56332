package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"riskwatch/internal/model"
	"riskwatch/internal/risk"
	"riskwatch/internal/service"
	"riskwatch/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// RiskHandler handles risk scoring and trend endpoints
type RiskHandler struct {
	riskSvc    *service.RiskService
	historySvc *service.HistoryService
}

// NewRiskHandler creates a new risk handler
func NewRiskHandler(riskSvc *service.RiskService, historySvc *service.HistoryService) *RiskHandler {
	return &RiskHandler{riskSvc: riskSvc, historySvc: historySvc}
}

// AssessRequest is the body of POST /v1/risk/assess
type AssessRequest struct {
	model.FeatureVector
	StudentName string `json:"student_name,omitempty"`
}

// UnmarshalJSON splits off student_name and strictly decodes the features
func (a *AssessRequest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	a.StudentName = ""
	if raw, ok := fields["student_name"]; ok {
		if err := json.Unmarshal(raw, &a.StudentName); err != nil {
			return err
		}
		delete(fields, "student_name")
	}

	fv, err := model.FeatureVectorFromFields(fields)
	if err != nil {
		return err
	}
	a.FeatureVector = fv
	return nil
}

// TrendRequest is the body of POST /v1/trend
type TrendRequest struct {
	History []float64 `json:"history"`
}

// TrendResponse reports the direction of a probability series
type TrendResponse struct {
	Trend model.TrendDirection `json:"trend"`
}

// Assess handles POST /v1/risk/assess
func (h *RiskHandler) Assess(w http.ResponseWriter, r *http.Request) {
	var req AssessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w, err)
		return
	}

	a, err := h.riskSvc.Assess(r.Context(), req.FeatureVector, req.StudentName)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, a)
}

// AssessStudent handles POST /v1/students/{id}/assessments. An optional
// body overrides the stored metrics and must carry all four features.
func (h *RiskHandler) AssessStudent(w http.ResponseWriter, r *http.Request) {
	var override *model.FeatureVector
	var fv model.FeatureVector
	if err := json.NewDecoder(r.Body).Decode(&fv); err == nil {
		override = &fv
	} else if !errors.Is(err, io.EOF) {
		writeDecodeError(w, err)
		return
	}

	actor := middleware.GetUserID(r.Context())
	a, err := h.riskSvc.AssessStudent(r.Context(), actor, mux.Vars(r)["id"], override)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, a)
}

// History handles GET /v1/students/{id}/history
func (h *RiskHandler) History(w http.ResponseWriter, r *http.Request) {
	report, err := h.historySvc.History(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Trend handles POST /v1/trend
func (h *RiskHandler) Trend(w http.ResponseWriter, r *http.Request) {
	var req TrendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	writeJSON(w, http.StatusOK, TrendResponse{Trend: risk.ComputeTrend(req.History)})
}

// TopRisk handles GET /v1/students/top-risk?limit=
func (h *RiskHandler) TopRisk(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.riskSvc.TopRisk(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
