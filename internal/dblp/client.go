// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dblp queries the DBLP bibliographic API: publication search,
// author search, and author profile documents. All responses are XML.
package dblp

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/profscan/internal/httputil"
	"github.com/pdiddy/profscan/pkg/types"
)

// API endpoints. Declared as vars so tests can substitute httptest servers.
var (
	publAPIBase   = "https://dblp.org/search/publ/api"
	authorAPIBase = "https://dblp.org/search/author/api"
)

// RequestsPerSecond caps the client-side request rate, on top of the 429
// backoff and the collector's politeness delays. Tests raise it to run
// without pacing.
var RequestsPerSecond = 2.0

// ErrRateLimited is returned when the API kept answering 429 after all
// backoff retries.
var ErrRateLimited = httputil.ErrRateLimited

// Client is a rate-limited DBLP API client.
type Client struct {
	httpClient *http.Client
	userAgent  string
	maxRetries int
	limiter    *rate.Limiter
}

// NewClient builds a client from the shared HTTP settings. maxRetries
// bounds the 429 backoff loop; 0 means the httputil default.
func NewClient(cfg types.HTTPConfig, maxRetries int) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  cfg.UserAgent,
		maxRetries: maxRetries,
		limiter:    rate.NewLimiter(rate.Limit(RequestsPerSecond), 1),
	}
}

// get performs a paced, retried GET and fails on any non-200 outcome.
// The caller owns the response body.
func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("DBLP request: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		resp.Body.Close()
		return nil, ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		resp.Body.Close()
		return nil, fmt.Errorf("DBLP returned HTTP %d", resp.StatusCode)
	}
	return resp, nil
}

// searchURL builds a DBLP search API URL with the standard parameters.
func searchURL(base, query string, limit int) string {
	params := url.Values{
		"q":      {query},
		"format": {"xml"},
		"h":      {fmt.Sprintf("%d", limit)},
	}
	return base + "?" + params.Encode()
}
