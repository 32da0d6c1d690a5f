package service

import "errors"

// ErrNotStarted is returned by operations invoked before Start or after Stop.
var ErrNotStarted = errors.New("service not started")
