// Package loadtest drives concurrent signups against a running service and
// checks the resulting roster for consistency.
package loadtest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/signup/pkg/logger"
)

// Run executes the complete load run.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	logger.Get().Info(ctx, "starting signup load run",
		logger.String("baseURL", cfg.BaseURL),
		logger.String("activity", cfg.Activity),
		logger.Int("students", cfg.Students),
		logger.Int("workers", cfg.Workers),
		logger.String("timeout", cfg.Timeout.String()),
		logger.Bool("unregister", cfg.Unregister),
	)

	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Make sure the activity exists
	before, err := client.listActivities(ctx)
	if err != nil {
		return stats, fmt.Errorf("initial listing failed: %w", err)
	}
	if _, ok := before[cfg.Activity]; !ok {
		return stats, fmt.Errorf("activity %q not found", cfg.Activity)
	}

	// Step 3: Sign up generated students concurrently
	accepted := submitSignups(ctx, cfg, client, generateStudents(cfg.Students), stats)

	// Step 4: Optionally unregister them again
	if cfg.Unregister {
		submitUnregisters(ctx, cfg, client, accepted, stats)
	}

	// Step 5: Verify the final roster
	after, err := client.listActivities(ctx)
	if err != nil {
		return stats, fmt.Errorf("final listing failed: %w", err)
	}
	activity := after[cfg.Activity]
	if err := verifyRoster(ctx, cfg, &activity, accepted, capacityEnforced(ctx, client), stats); err != nil {
		return stats, fmt.Errorf("roster verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	logger.Get().Info(ctx, "load run completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	logger.Get().Info(ctx, "checking service health")

	status, _, err := client.do(ctx, http.MethodGet, "/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", status)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// capacityEnforced reads the policy from /stats, assuming enforcement when unknown.
func capacityEnforced(ctx context.Context, client *HTTPClient) bool {
	status, body, err := client.do(ctx, http.MethodGet, "/stats")
	if err != nil || status != http.StatusOK {
		return true
	}
	var stats struct {
		EnforceCapacity *bool `json:"enforceCapacity"`
	}
	if err := json.Unmarshal(body, &stats); err != nil || stats.EnforceCapacity == nil {
		return true
	}
	return *stats.EnforceCapacity
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var acceptRate, requestsPerSecond float64
	if stats.Submitted > 0 {
		acceptRate = float64(stats.Accepted) / float64(stats.Submitted) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.Submitted+stats.Unregistered+stats.UnregisterFailed) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("submitted", stats.Submitted),
		logger.Int("accepted", stats.Accepted),
		logger.Int("rejectedFull", stats.RejectedFull),
		logger.Int("rejectedOther", stats.RejectedOther),
		logger.Int("failed", stats.Failed),
		logger.Int("unregistered", stats.Unregistered),
		logger.Int("unregisterFailed", stats.UnregisterFailed),
		logger.Int("rosterSize", stats.RosterSize),
		logger.Int("capacity", stats.Capacity),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("acceptRate", acceptRate),
		logger.Float64("requestsPerSecond", requestsPerSecond),
	)
}
