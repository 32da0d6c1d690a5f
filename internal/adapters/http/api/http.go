// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/signup/internal/adapters/repository"
	"github.com/okian/signup/internal/domain/model"
	"github.com/okian/signup/pkg/logger"
	"github.com/okian/signup/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ActivitiesDependencies
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	activitiesHandler *ActivitiesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(deps),
		activitiesHandler: NewActivitiesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, RequestIDMiddleware(MetricsMiddleware(h, endpoint)))
	}

	route("GET /activities", "activities", s.activitiesHandler.HandleList)
	route("POST /activities/{name}/signup", "signup", s.activitiesHandler.HandleSignup)
	route("DELETE /activities/{name}/unregister", "unregister", s.activitiesHandler.HandleUnregister)
	route("GET /activities/{name}/history", "history", s.activitiesHandler.HandleHistory)
	route("GET /stats", "stats", s.statsHandler.HandleStats)
	route("GET /healthz", "healthz", s.healthHandler.HandleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	logger.Get().Named("api").Debug(ctx, "api routes registered")
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

// activityResponse is the wire shape of one activity under GET /activities.
type activityResponse struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

func newActivityResponse(a *model.Activity) activityResponse {
	participants := a.Participants
	if participants == nil {
		participants = []string{}
	}
	return activityResponse{
		Description:     a.Description,
		Schedule:        a.Schedule,
		MaxParticipants: a.MaxParticipants,
		Participants:    participants,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail, Code: code})
}

// writeFailure translates a handler error into its HTTP status and body.
func writeFailure(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingEmail):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "email query parameter is required")
	case errors.Is(err, ErrInvalidLimit):
		writeError(w, http.StatusBadRequest, "bad_request", "limit must be a positive integer")
	case errors.Is(err, ErrLimitTooHigh):
		writeError(w, http.StatusBadRequest, "limit_exceeded", "limit must not exceed 100")
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "Activity not found")
	case errors.Is(err, repository.ErrAlreadySignedUp):
		writeError(w, http.StatusBadRequest, "already_signed_up", "Student is already signed up")
	case errors.Is(err, repository.ErrNotRegistered):
		writeError(w, http.StatusBadRequest, "not_registered", "Student is not registered for this activity")
	case errors.Is(err, repository.ErrActivityFull):
		writeError(w, http.StatusBadRequest, "activity_full", "Activity is full")
	default:
		logger.Get().Named("api").Error(ctx, "request failed",
			logger.String("requestID", RequestIDFromContext(ctx)),
			logger.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
}
