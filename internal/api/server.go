// Package api provides the HTTP server for MemoClarity.
// It exposes the REST API the single-page app is built against.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/memoclarity/memoclarity/internal/app/chat"
	"github.com/memoclarity/memoclarity/internal/app/tracker"
	"github.com/memoclarity/memoclarity/internal/health"
)

// Server is the MemoClarity HTTP API server.
type Server struct {
	tracker        *tracker.Tracker
	chat           *chat.Service
	health         *health.Checker
	version        string
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(trk *tracker.Tracker, chatSvc *chat.Service) *Server {
	return &Server{tracker: trk, chat: chatSvc, version: "dev"}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetHealth sets the health checker surfaced at /health.
func (s *Server) SetHealth(h *health.Checker) { s.health = h }

// SetVersion sets the version reported by /api/version.
func (s *Server) SetVersion(v string) { s.version = v }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{
				"status": "MemoClarity is running",
			})
		})
		r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{
				"version": s.version,
			})
		})

		r.Post("/checkin", s.handleCheckIn)
		r.Get("/streak", s.handleStreak)
		r.Get("/score", s.handleScore)
		r.Get("/summary", s.handleSummary)
		r.Post("/listening", s.handleListening)

		r.Route("/tickets", func(r chi.Router) {
			r.Get("/", s.handleTickets)
			r.Get("/history", s.handleTicketHistory)
			r.Get("/monthly", s.handleMonthlyStats)
		})

		r.Route("/games", func(r chi.Router) {
			r.Post("/session", s.handleGameSession)
			r.Post("/result", s.handleGameResult)
			r.Get("/results", s.handleGameResults)
			r.Get("/levels", s.handleGameLevels)
		})

		r.Get("/testimonies", s.handleTestimonies)

		r.Route("/tests", func(r chi.Router) {
			r.Post("/", s.handleSubmitTest)
			r.Get("/", s.handleListTests)
		})

		r.Route("/chat", func(r chi.Router) {
			r.Post("/", s.handleChat)
			r.Get("/history", s.handleChatHistory)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", s.handleGetSettings)
			r.Put("/", s.handlePutSettings)
		})
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// handleHealth reports the latest health-check statuses.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	statuses := s.health.Statuses()
	code := http.StatusOK
	for _, st := range statuses {
		if !st.Healthy {
			code = http.StatusServiceUnavailable
			break
		}
	}
	writeJSON(w, code, map[string]any{
		"status": map[bool]string{true: "ok", false: "degraded"}[code == http.StatusOK],
		"checks": statuses,
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for the SPA during local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
