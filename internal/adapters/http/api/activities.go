package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/signup/internal/domain/model"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// ActivitiesDependencies defines the registry operations the handlers need.
type ActivitiesDependencies interface {
	ListActivities(ctx context.Context) (map[string]model.Activity, error)
	Signup(ctx context.Context, name, email string) (model.Activity, error)
	Unregister(ctx context.Context, name, email string) (model.Activity, error)
	History(ctx context.Context, name string, limit int) ([]model.RosterEvent, error)
}

// ActivitiesHandler serves the activity catalog and roster changes.
type ActivitiesHandler struct {
	deps ActivitiesDependencies
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(deps ActivitiesDependencies) *ActivitiesHandler {
	return &ActivitiesHandler{deps: deps}
}

// HandleList handles GET /activities requests.
func (h *ActivitiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_activities"
	activities, err := h.deps.ListActivities(r.Context())
	if err != nil {
		writeFailure(r.Context(), w, Wrap(op, err))
		return
	}
	out := make(map[string]activityResponse, len(activities))
	for name, a := range activities {
		out[name] = newActivityResponse(&a)
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleSignup handles POST /activities/{name}/signup?email= requests.
func (h *ActivitiesHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	const op = "api.signup"
	name := r.PathValue("name")
	email, err := emailParam(op, r)
	if err != nil {
		writeFailure(r.Context(), w, err)
		return
	}
	if _, err := h.deps.Signup(r.Context(), name, email); err != nil {
		writeFailure(r.Context(), w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("Signed up %s for %s", email, name)})
}

// HandleUnregister handles DELETE /activities/{name}/unregister?email= requests.
func (h *ActivitiesHandler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	const op = "api.unregister"
	name := r.PathValue("name")
	email, err := emailParam(op, r)
	if err != nil {
		writeFailure(r.Context(), w, err)
		return
	}
	if _, err := h.deps.Unregister(r.Context(), name, email); err != nil {
		writeFailure(r.Context(), w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("Unregistered %s from %s", email, name)})
}

// HandleHistory handles GET /activities/{name}/history?limit= requests.
func (h *ActivitiesHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	const op = "api.history"
	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeFailure(r.Context(), w, WrapKind(op, ErrInvalidLimit, err))
			return
		}
		if n < 1 {
			writeFailure(r.Context(), w, NewKind(op, ErrInvalidLimit))
			return
		}
		if n > maxHistoryLimit {
			writeFailure(r.Context(), w, NewKind(op, ErrLimitTooHigh))
			return
		}
		limit = n
	}

	events, err := h.deps.History(r.Context(), r.PathValue("name"), limit)
	if err != nil {
		writeFailure(r.Context(), w, Wrap(op, err))
		return
	}
	if events == nil {
		events = []model.RosterEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

func emailParam(op string, r *http.Request) (string, error) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		return "", NewKind(op, ErrMissingEmail)
	}
	return email, nil
}
