package loadtest

import (
	"os"
)

// ShowHelp prints usage information for the load tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Activity Signup Load Tool
=========================

Signs many generated students up for one activity concurrently and checks
the final roster: every accepted student appears exactly once, the roster
never exceeds max_participants, and every request got a definite answer.

Usage:
  go run ./cmd/signup-load [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -activity string
        Activity to sign students up for (default "Chess Club")
  -students int
        Number of students to generate (default 100)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -unregister
        Unregister accepted students after the signup phase
  -verbose
        Log every request outcome
  -help
        Show this help message

Examples:
  # Race 100 students for the 12 Chess Club spots
  go run ./cmd/signup-load

  # Larger run that cleans up after itself
  go run ./cmd/signup-load -activity "Gym Class" -students 5000 -workers 64 -unregister
`)
}
