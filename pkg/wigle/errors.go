package wigle

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies a failed page fetch. Retry decisions are a pure
// function of the kind; the client itself never retries.
type ErrorKind int

const (
	// KindUnauthorized: the API token was rejected (401/403).
	KindUnauthorized ErrorKind = iota + 1
	// KindRateLimited: the upstream returned 429; safe to retry after a cooldown.
	KindRateLimited
	// KindTimeout: the connection or read exceeded the request deadline,
	// or the transport failed before a response arrived; safe to retry.
	KindTimeout
	// KindRedirected: the endpoint answered with a redirect, which points
	// at a configuration problem rather than a transient fault.
	KindRedirected
	// KindMalformed: the response could not be decoded into the expected
	// envelope, or carried an unexpected status code.
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindRateLimited:
		return "rate_limited"
	case KindTimeout:
		return "timeout"
	case KindRedirected:
		return "redirected"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// APIError is the single error type returned for page-fetch failures.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	// RetryAfter holds the upstream Retry-After hint on 429 responses,
	// zero when the header was absent or unparseable.
	RetryAfter time.Duration
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("wigle: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("wigle: %s (status %d)", e.Kind, e.StatusCode)
}

func (e *APIError) Unwrap() error { return e.Err }

// Retriable reports whether the failure is transient.
func (e *APIError) Retriable() bool {
	return e.Kind == KindRateLimited || e.Kind == KindTimeout
}

// AsAPIError extracts an *APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
