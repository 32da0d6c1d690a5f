package loadtest

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/signup/pkg/logger"
)

// verifyRoster checks the final roster against what the run observed:
// every accepted (and still registered) email appears exactly once, nothing
// unregistered lingers, the roster fits its capacity, and every submission
// got a definite answer.
func verifyRoster(ctx context.Context, cfg *Config, a *Activity, accepted []string, enforceCapacity bool, stats *Stats) error {
	var errs []error

	if stats.Accepted+stats.Rejected() != stats.Submitted {
		errs = append(errs, fmt.Errorf("accepted (%d) + rejected (%d) != submitted (%d); %d requests failed",
			stats.Accepted, stats.Rejected(), stats.Submitted, stats.Failed))
	}

	counts := make(map[string]int, len(a.Participants))
	for _, p := range a.Participants {
		counts[p]++
		if counts[p] == 2 {
			errs = append(errs, fmt.Errorf("%s appears more than once", p))
		}
	}

	for _, email := range accepted {
		switch n := counts[email]; {
		case cfg.Unregister && n != 0:
			errs = append(errs, fmt.Errorf("%s still registered after unregister", email))
		case !cfg.Unregister && n != 1:
			errs = append(errs, fmt.Errorf("%s accepted but appears %d times", email, n))
		}
	}

	stats.RosterSize = len(a.Participants)
	stats.Capacity = a.MaxParticipants
	if enforceCapacity && len(a.Participants) > a.MaxParticipants {
		errs = append(errs, fmt.Errorf("roster holds %d participants, capacity is %d",
			len(a.Participants), a.MaxParticipants))
	}
	if !enforceCapacity {
		logger.Get().Warn(ctx, "capacity enforcement is off; skipping capacity check")
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	logger.Get().Info(ctx, "roster verified",
		logger.Int("rosterSize", stats.RosterSize),
		logger.Int("capacity", stats.Capacity),
	)
	return nil
}
