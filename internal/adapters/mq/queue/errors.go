package queue

import "errors"

// Sentinel kinds for queue errors.
var (
	ErrFull   = errors.New("roster queue full")
	ErrClosed = errors.New("roster queue closed")
)
