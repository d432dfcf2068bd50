package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// QueryBounds are the validated geographic parameters and credential for one
// retrieval session. Immutable after construction.
type QueryBounds struct {
	LatLow   float64
	LatHigh  float64
	LonLow   float64
	LonHigh  float64
	APIToken string
	// Label names the area, used for the result filename when present.
	Label string
}

// ValidationError reports a rejected input field. No network activity has
// happened when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// API tokens are the encoded name:token pair, so base64-ish characters only.
var tokenShape = regexp.MustCompile(`^[\w\-=]+$`)

// ParseBounds validates raw coordinate strings and a token into QueryBounds.
func ParseBounds(latLow, latHigh, lonLow, lonHigh, token, label string) (QueryBounds, error) {
	b := QueryBounds{APIToken: token, Label: label}

	var err error
	if b.LatLow, err = parseCoord("latrange1", latLow, -90, 90); err != nil {
		return QueryBounds{}, err
	}
	if b.LatHigh, err = parseCoord("latrange2", latHigh, -90, 90); err != nil {
		return QueryBounds{}, err
	}
	if b.LonLow, err = parseCoord("longrange1", lonLow, -180, 180); err != nil {
		return QueryBounds{}, err
	}
	if b.LonHigh, err = parseCoord("longrange2", lonHigh, -180, 180); err != nil {
		return QueryBounds{}, err
	}

	if err := b.Validate(); err != nil {
		return QueryBounds{}, err
	}
	return b, nil
}

// Validate checks an already-numeric QueryBounds, for callers that built the
// coordinates from a predefined location rather than raw strings.
func (b QueryBounds) Validate() error {
	if b.LatLow >= b.LatHigh {
		return &ValidationError{Field: "latrange", Reason: "lower bound must be strictly less than upper bound"}
	}
	if b.LonLow >= b.LonHigh {
		return &ValidationError{Field: "longrange", Reason: "lower bound must be strictly less than upper bound"}
	}
	if strings.TrimSpace(b.APIToken) == "" {
		return &ValidationError{Field: "api_token", Reason: "must not be blank"}
	}
	if !tokenShape.MatchString(b.APIToken) {
		return &ValidationError{Field: "api_token", Reason: "contains characters outside the expected token alphabet"}
	}
	return nil
}

func parseCoord(field, raw string, min, max float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &ValidationError{Field: field, Reason: fmt.Sprintf("%q is not a number", raw)}
	}
	if v < min || v > max {
		return 0, &ValidationError{Field: field, Reason: fmt.Sprintf("%g is outside [%g, %g]", v, min, max)}
	}
	return v, nil
}
