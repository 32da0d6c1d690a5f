package repository

import "errors"

// Sentinel kinds for registry errors.
var (
	ErrNotFound        = errors.New("activity not found")
	ErrAlreadySignedUp = errors.New("student is already signed up")
	ErrNotRegistered   = errors.New("student is not registered for this activity")
	ErrActivityFull    = errors.New("activity is full")
	ErrDuplicateName   = errors.New("duplicate activity name")
)
