// Package api provides the QuestLog HTTP server: the /api/* JSON surface the
// single-page frontend consumes. Authentication lives upstream; the caller's
// identity arrives in the X-User-ID header and is trusted here.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/questlog/questlog/internal/app/engagement"
	"github.com/questlog/questlog/internal/app/localtime"
	"github.com/questlog/questlog/internal/app/social"
	"github.com/questlog/questlog/internal/domain"
	"github.com/questlog/questlog/internal/health"
	"github.com/questlog/questlog/internal/infra/metrics"
	"github.com/questlog/questlog/internal/infra/sqlite"
)

// Server is the QuestLog HTTP API server.
type Server struct {
	db             *sqlite.DB
	parser         domain.ActivityParser
	social         *social.Service
	badges         *engagement.BadgeEvaluator
	chests         *engagement.ChestService
	checker        *health.Checker
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(db *sqlite.DB, parser domain.ActivityParser, soc *social.Service, badges *engagement.BadgeEvaluator, chests *engagement.ChestService) *Server {
	return &Server{db: db, parser: parser, social: soc, badges: badges, chests: chests}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetHealthChecker attaches a background checker whose results are exposed
// at /health.
func (s *Server) SetHealthChecker(c *health.Checker) { s.checker = c }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)
	r.Use(inFlightMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", s.handleCreateUser)

		r.Get("/dashboard", s.handleDashboard)
		r.Get("/recap", s.handleRecap)

		r.Route("/activities", func(r chi.Router) {
			r.Post("/", s.handleLogActivity)
			r.Get("/", s.handleListActivities)
			r.Put("/{id}", s.handleUpdateActivity)
			r.Delete("/{id}", s.handleDeleteActivity)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Post("/", s.handleCreateGoal)
			r.Get("/", s.handleListGoals)
			r.Delete("/{id}", s.handleDeleteGoal)
		})

		r.Get("/leaderboard", s.handleLeaderboard)

		r.Get("/profile", s.handleProfile)
		r.Put("/profile", s.handleUpdateProfile)
		r.Get("/badges", s.handleBadges)

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/heatmap", s.handleHeatmap)
			r.Get("/trends", s.handleTrends)
			r.Get("/summary", s.handleAnalyticsSummary)
		})

		r.Route("/friends", func(r chi.Router) {
			r.Get("/", s.handleListFriends)
			r.Post("/request", s.handleFriendRequest)
			r.Post("/{id}/accept", s.handleFriendAccept)
		})

		r.Route("/challenges", func(r chi.Router) {
			r.Post("/", s.handleCreateChallenge)
			r.Get("/", s.handleListChallenges)
			r.Post("/{id}/accept", s.handleAcceptChallenge)
			r.Post("/{id}/settle", s.handleSettleChallenge)
		})

		r.Post("/chests/open", s.handleOpenChest)
		r.Get("/items", s.handleListItems)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// handleHealth reports liveness plus background check results when a
// checker is attached.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.checker == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	status := "ok"
	code := http.StatusOK
	if !s.checker.IsHealthy() {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]interface{}{
		"status": status,
		"checks": s.checker.Statuses(),
	})
}

// ─── Request helpers ────────────────────────────────────────────────────────

// userID extracts the caller identity set by the upstream auth layer.
func userID(r *http.Request) (int64, error) {
	h := r.Header.Get("X-User-ID")
	if h == "" {
		return 0, errors.New("missing X-User-ID header")
	}
	id, err := strconv.ParseInt(h, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid X-User-ID header")
	}
	return id, nil
}

// tzOffset reads the tz_offset query parameter; malformed input means UTC.
func tzOffset(r *http.Request) int {
	return localtime.ParseOffset(r.URL.Query().Get("tz_offset"))
}

// pathID parses a numeric {id} route parameter.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
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

// writeDomainError maps sentinel errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrActivityNotFound),
		errors.Is(err, domain.ErrGoalNotFound),
		errors.Is(err, domain.ErrChallengeNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNotOwner):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrDuplicateFriendship):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInsufficientCredits),
		errors.Is(err, domain.ErrInvalidDuration):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// corsMiddleware adds CORS headers for the SPA frontend.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-User-ID")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// inFlightMiddleware tracks concurrent requests in Prometheus.
func inFlightMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.RequestsInFlight.Inc()
		defer metrics.RequestsInFlight.Dec()
		next.ServeHTTP(w, r)
	})
}
