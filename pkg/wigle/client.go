// Package wigle provides a client for the WiGLE v2 search API.
package wigle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Kind selects which observation catalog to search.
type Kind string

const (
	KindNetwork   Kind = "network"
	KindBluetooth Kind = "bluetooth"
	KindCell      Kind = "cell"
)

// ParseKind validates a user-supplied kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindNetwork, KindBluetooth, KindCell:
		return Kind(s), nil
	default:
		return "", eris.Errorf("wigle: unknown search kind %q (expected network, bluetooth, or cell)", s)
	}
}

// Network is one observation as returned by the search endpoints.
type Network struct {
	NetID       string  `json:"netid"`
	SSID        string  `json:"ssid"`
	Signal      int     `json:"signal"`
	Latitude    float64 `json:"trilat"`
	Longitude   float64 `json:"trilong"`
	LastUpdated string  `json:"lastupdt"`
	Type        string  `json:"type"`
}

// PageResult is one decoded page of search results.
type PageResult struct {
	Success      bool      `json:"success"`
	TotalResults int       `json:"totalResults"`
	SearchAfter  string    `json:"searchAfter"`
	Results      []Network `json:"results"`
}

// SearchParams describes one bounded geographic search.
type SearchParams struct {
	Kind     Kind
	LatLow   float64
	LatHigh  float64
	LonLow   float64
	LonHigh  float64
	OnlyMine bool
	// LastUpdated filters to observations updated after yyyyMMdd[hhmm[ss]].
	LastUpdated string
	PageSize    int
}

// Client defines the WiGLE search operations. Each call issues exactly one
// outbound request; pagination and retries belong to the caller.
type Client interface {
	SearchPage(ctx context.Context, params SearchParams, cursor string) (*PageResult, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout sets the per-request deadline. It takes effect after all
// options are applied, so it holds even when combined with WithHTTPClient
// in either order.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.timeout = d
	}
}

// WithRequestInterval sets the pause enforced between consecutive requests.
func WithRequestInterval(d time.Duration) Option {
	return func(c *httpClient) {
		if d > 0 {
			c.limiter = rate.NewLimiter(rate.Every(d), 1)
		}
	}
}

type httpClient struct {
	token   string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	timeout time.Duration
}

// errRedirect marks a refused redirect so the failure can be classified.
var errRedirect = errors.New("endpoint attempted to redirect")

// New creates a WiGLE API client authenticated with the given token.
// The default limiter spaces requests five seconds apart, matching the
// upstream's published courtesy interval for unpaid accounts.
func New(token string, opts ...Option) Client {
	c := &httpClient{
		token:   token,
		baseURL: "https://api.wigle.net",
		limiter: rate.NewLimiter(rate.Every(5*time.Second), 1),
		http: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return errRedirect
			},
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		c.http.Timeout = c.timeout
	}
	return c
}

// SearchPage issues one GET against the selected search endpoint. The cursor
// is omitted on the first page. Failures are reported as *APIError; an outer
// context cancellation is returned untouched so callers can tell a user stop
// apart from an upstream fault.
func (c *httpClient) SearchPage(ctx context.Context, params SearchParams, cursor string) (*PageResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := c.buildRequest(ctx, params, cursor)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &APIError{Kind: KindTimeout, StatusCode: resp.StatusCode, Err: eris.Wrap(err, "read response body")}
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// decoded below
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &APIError{Kind: KindUnauthorized, StatusCode: resp.StatusCode}
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &APIError{
			Kind:       KindRateLimited,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	default:
		return nil, &APIError{
			Kind:       KindMalformed,
			StatusCode: resp.StatusCode,
			Err:        eris.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var page PageResult
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, &APIError{Kind: KindMalformed, StatusCode: resp.StatusCode, Err: eris.Wrap(err, "decode response")}
	}
	if !page.Success {
		return nil, &APIError{Kind: KindMalformed, StatusCode: resp.StatusCode, Err: eris.New("upstream reported success=false")}
	}

	return &page, nil
}

func (c *httpClient) buildRequest(ctx context.Context, params SearchParams, cursor string) (*http.Request, error) {
	kind := params.Kind
	if kind == "" {
		kind = KindNetwork
	}
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	q := url.Values{}
	q.Set("latrange1", strconv.FormatFloat(params.LatLow, 'f', -1, 64))
	q.Set("latrange2", strconv.FormatFloat(params.LatHigh, 'f', -1, 64))
	q.Set("longrange1", strconv.FormatFloat(params.LonLow, 'f', -1, 64))
	q.Set("longrange2", strconv.FormatFloat(params.LonHigh, 'f', -1, 64))
	q.Set("resultsPerPage", strconv.Itoa(pageSize))
	if cursor != "" {
		q.Set("searchAfter", cursor)
	}
	if params.OnlyMine {
		q.Set("onlymine", "true")
	}
	if params.LastUpdated != "" {
		q.Set("lastupdt", params.LastUpdated)
	}

	reqURL := fmt.Sprintf("%s/api/v2/%s/search?%s", c.baseURL, kind, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "wigle: create request")
	}
	req.Header.Set("Authorization", "Basic "+c.token)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// classifyTransport maps transport-level failures onto the error taxonomy.
// Anything that failed before a response arrived is treated as a timeout,
// except refused redirects which indicate an endpoint problem.
func classifyTransport(err error) error {
	if errors.Is(err, errRedirect) {
		return &APIError{Kind: KindRedirected, Err: errRedirect}
	}
	return &APIError{Kind: KindTimeout, Err: err}
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
