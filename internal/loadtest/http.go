package loadtest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/signup/pkg/logger"
)

// HTTPClient wraps http.Client with the service base URL.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func rosterPath(activity, action, email string) string {
	return "/activities/" + url.PathEscape(activity) + "/" + action + "?email=" + url.QueryEscape(email)
}

// listActivities fetches GET /activities.
func (c *HTTPClient) listActivities(ctx context.Context) (map[string]Activity, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/activities")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("list activities returned status %d", status)
	}
	var out map[string]Activity
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode activities: %w", err)
	}
	return out, nil
}

// rosterChange performs a signup or unregister and classifies the outcome.
func (c *HTTPClient) rosterChange(ctx context.Context, method, activity, action, email string) (string, string) {
	status, body, err := c.do(ctx, method, rosterPath(activity, action, email))
	if err != nil {
		return outcomeFailed, err.Error()
	}
	if status == http.StatusOK {
		var msg MessageResponse
		_ = json.Unmarshal(body, &msg)
		return outcomeAccepted, msg.Message
	}

	var e ErrorResponse
	_ = json.Unmarshal(body, &e)
	switch {
	case status >= http.StatusInternalServerError:
		return outcomeFailed, e.Detail
	case e.Code == "activity_full":
		return outcomeFull, e.Detail
	default:
		return outcomeRejected, fmt.Sprintf("%d %s", status, e.Detail)
	}
}

// result pairs an email with the outcome of its request.
type result struct {
	email   string
	outcome string
}

// fanOut runs fn for every email over cfg.Workers goroutines.
func fanOut(ctx context.Context, cfg *Config, emails []string, fn func(context.Context, string) (string, string)) []result {
	var (
		mu        sync.Mutex
		results   = make([]result, 0, len(emails))
		completed int64
	)

	jobs := make(chan string, cfg.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for email := range jobs {
				outcome, detail := fn(ctx, email)
				n := atomic.AddInt64(&completed, 1)
				if cfg.Verbose {
					logger.Get().Debug(ctx, "request finished",
						logger.String("email", email),
						logger.String("outcome", outcome),
						logger.String("detail", detail),
						logger.Int("completed", int(n)),
					)
				}
				mu.Lock()
				results = append(results, result{email: email, outcome: outcome})
				mu.Unlock()
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, email := range emails {
			select {
			case <-ctx.Done():
				return
			case jobs <- email:
			}
		}
	}()

	wg.Wait()
	return results
}

// submitSignups signs every email up concurrently and fills the signup counters.
// It returns the accepted emails.
func submitSignups(ctx context.Context, cfg *Config, client *HTTPClient, emails []string, stats *Stats) []string {
	logger.Get().Info(ctx, "submitting signups",
		logger.Int("students", len(emails)),
		logger.Int("workers", cfg.Workers),
	)

	results := fanOut(ctx, cfg, emails, func(ctx context.Context, email string) (string, string) {
		return client.rosterChange(ctx, http.MethodPost, cfg.Activity, "signup", email)
	})

	var accepted []string
	for _, r := range results {
		stats.Submitted++
		switch r.outcome {
		case outcomeAccepted:
			stats.Accepted++
			accepted = append(accepted, r.email)
		case outcomeFull:
			stats.RejectedFull++
		case outcomeRejected:
			stats.RejectedOther++
		default:
			stats.Failed++
		}
	}

	logger.Get().Info(ctx, "signup submission completed",
		logger.Int("accepted", stats.Accepted),
		logger.Int("rejectedFull", stats.RejectedFull),
		logger.Int("rejectedOther", stats.RejectedOther),
		logger.Int("failed", stats.Failed),
	)
	return accepted
}

// submitUnregisters removes every accepted email concurrently.
func submitUnregisters(ctx context.Context, cfg *Config, client *HTTPClient, emails []string, stats *Stats) {
	logger.Get().Info(ctx, "unregistering accepted students", logger.Int("students", len(emails)))

	results := fanOut(ctx, cfg, emails, func(ctx context.Context, email string) (string, string) {
		return client.rosterChange(ctx, http.MethodDelete, cfg.Activity, "unregister", email)
	})
	for _, r := range results {
		if r.outcome == outcomeAccepted {
			stats.Unregistered++
		} else {
			stats.UnregisterFailed++
		}
	}
}
