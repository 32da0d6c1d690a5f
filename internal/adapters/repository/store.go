// Package repository holds the in-memory activity registry and roster journal.
package repository

import (
	"context"

	"github.com/okian/signup/internal/domain/model"
)

// Store provides read/write access to the activity registry.
type Store interface {
	// List returns every activity keyed by name. The result is a copy.
	List(ctx context.Context) map[string]model.Activity

	// Get returns one activity or ErrNotFound.
	Get(ctx context.Context, name string) (model.Activity, error)

	// Signup appends email to the roster of name and returns the updated activity.
	// Returns ErrNotFound, ErrAlreadySignedUp, or ErrActivityFull when capacity is enforced.
	Signup(ctx context.Context, name, email string) (model.Activity, error)

	// Unregister removes email from the roster of name and returns the updated activity.
	// Returns ErrNotFound or ErrNotRegistered.
	Unregister(ctx context.Context, name, email string) (model.Activity, error)

	// Count returns the number of activities.
	Count(ctx context.Context) int

	// ParticipantCount returns the number of roster entries across all activities.
	ParticipantCount(ctx context.Context) int
}
