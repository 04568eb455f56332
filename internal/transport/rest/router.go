package rest

import (
	"net/http"
	"strings"

	_ "riskwatch/docs"
	"riskwatch/internal/model"
	"riskwatch/internal/service"
	"riskwatch/internal/transport/rest/handler"
	"riskwatch/internal/transport/rest/middleware"
	"riskwatch/internal/transport/ws"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService      *service.AuthService
	StudentService   *service.StudentService
	RiskService      *service.RiskService
	JournalService   *service.JournalService
	HistoryService   *service.HistoryService
	AnalyticsService *service.AnalyticsService
	WSHub            *ws.Hub
	CORSOrigins      []string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	studentHandler := handler.NewStudentHandler(c.StudentService)
	riskHandler := handler.NewRiskHandler(c.RiskService, c.HistoryService)
	journalHandler := handler.NewJournalHandler(c.JournalService)
	adminHandler := handler.NewAdminHandler(c.AnalyticsService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)
	staffOnly := middleware.RequireRole(model.RoleCounselor, model.RoleAdmin)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORSOrigins))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket route (token in query param)
	if c.WSHub != nil {
		wsHandler := ws.NewHandler(c.WSHub, c.AuthService)
		v1.HandleFunc("/ws/alerts", wsHandler.AlertsWS).Methods("GET")
	}

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// OpenAPI document
	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			http.Error(w, `{"error":"api docs unavailable"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods("GET")

	// Any authenticated user
	authed := v1.NewRoute().Subrouter()
	authed.Use(authMW.RequireAuth)

	authed.HandleFunc("/risk/assess", riskHandler.Assess).Methods("POST", "OPTIONS")
	authed.HandleFunc("/screen", journalHandler.Screen).Methods("POST", "OPTIONS")
	authed.HandleFunc("/trend", riskHandler.Trend).Methods("POST", "OPTIONS")

	// Counselor and admin routes
	staff := v1.NewRoute().Subrouter()
	staff.Use(authMW.RequireAuth, staffOnly)

	staff.HandleFunc("/students", studentHandler.Create).Methods("POST", "OPTIONS")
	staff.HandleFunc("/students", studentHandler.List).Methods("GET", "OPTIONS")
	staff.HandleFunc("/students/top-risk", riskHandler.TopRisk).Methods("GET", "OPTIONS")
	staff.HandleFunc("/students/{id}", studentHandler.Get).Methods("GET", "OPTIONS")
	staff.HandleFunc("/students/{id}/features", studentHandler.UpdateFeatures).Methods("PUT", "OPTIONS")
	staff.HandleFunc("/students/{id}/assessments", riskHandler.AssessStudent).Methods("POST", "OPTIONS")
	staff.HandleFunc("/students/{id}/history", riskHandler.History).Methods("GET", "OPTIONS")
	staff.HandleFunc("/students/{id}/journal", journalHandler.Log).Methods("POST", "OPTIONS")
	staff.HandleFunc("/students/{id}/journal", journalHandler.List).Methods("GET", "OPTIONS")
	staff.HandleFunc("/alerts/recent", adminHandler.RecentAlerts).Methods("GET", "OPTIONS")

	// Admin routes
	admin := v1.PathPrefix("/admin").Subrouter()
	admin.Use(authMW.RequireAuth, adminOnly)

	admin.HandleFunc("/analytics", adminHandler.Analytics).Methods("GET", "OPTIONS")
	admin.HandleFunc("/audit", adminHandler.Audit).Methods("GET", "OPTIONS")
	admin.HandleFunc("/users", authHandler.CreateAccount).Methods("POST", "OPTIONS")

	return r
}

// corsMiddleware allows every origin when origins is empty or holds "*",
// otherwise it echoes a listed request origin.
func corsMiddleware(origins []string) mux.MiddlewareFunc {
	allowAll := len(origins) == 0
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if allowAll {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else if origin := r.Header.Get("Origin"); allowed[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
