package retrieve

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pugetsound-wardrive/wiglectl/pkg/wigle"
)

// Options controls the per-page retry budget and backoff schedule.
type Options struct {
	// MaxAttempts is the total number of fetch attempts per page,
	// including the first. Default: 3.
	MaxAttempts int

	// Backoff holds the deterministic delays before attempts 2..N. The last
	// entry repeats if there are more retries than entries. No jitter, so
	// behavior is reproducible. Default: 5s, 30s.
	Backoff []time.Duration

	// MaxCooldown caps an upstream Retry-After hint. Default: 2m.
	MaxCooldown time.Duration

	// PageSize is the number of results requested per page. Default: 100.
	PageSize int
}

func (o Options) withDefaults() Options {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if len(o.Backoff) == 0 {
		o.Backoff = []time.Duration{5 * time.Second, 30 * time.Second}
	}
	if o.MaxCooldown <= 0 {
		o.MaxCooldown = 2 * time.Minute
	}
	if o.PageSize <= 0 {
		o.PageSize = 100
	}
	return o
}

// PageFetchFailed reports a page whose retry budget was exhausted. Records
// accumulated from earlier pages are unaffected.
type PageFetchFailed struct {
	Attempts int
	Err      error
}

func (e *PageFetchFailed) Error() string {
	return fmt.Sprintf("page fetch failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *PageFetchFailed) Unwrap() error { return e.Err }

// fetchPage wraps a single page fetch with the bounded retry policy.
// RateLimited and Timeout failures are retried on the deterministic schedule;
// everything else fails immediately. Context cancellation is observed both
// between attempts and during backoff sleeps and is returned untouched.
func (d *Driver) fetchPage(ctx context.Context, log *zap.Logger, params wigle.SearchParams, cursor string) (*wigle.PageResult, error) {
	var lastErr error
	for attempt := 1; attempt <= d.opts.MaxAttempts; attempt++ {
		page, err := d.client.SearchPage(ctx, params, cursor)
		if err == nil {
			return page, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		apiErr, ok := wigle.AsAPIError(err)
		if !ok || !apiErr.Retriable() {
			return nil, err
		}

		if attempt == d.opts.MaxAttempts {
			break
		}

		delay := d.backoffFor(attempt, apiErr)
		log.Warn("page fetch failed, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", d.opts.MaxAttempts),
			zap.Duration("backoff", delay),
			zap.String("kind", apiErr.Kind.String()),
			zap.Error(err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, &PageFetchFailed{Attempts: d.opts.MaxAttempts, Err: lastErr}
}

// backoffFor returns the delay before the retry following attempt. An
// upstream Retry-After hint overrides the schedule, capped at MaxCooldown.
func (d *Driver) backoffFor(attempt int, apiErr *wigle.APIError) time.Duration {
	if apiErr.RetryAfter > 0 {
		if apiErr.RetryAfter > d.opts.MaxCooldown {
			return d.opts.MaxCooldown
		}
		return apiErr.RetryAfter
	}

	idx := attempt - 1
	if idx >= len(d.opts.Backoff) {
		idx = len(d.opts.Backoff) - 1
	}
	return d.opts.Backoff[idx]
}
