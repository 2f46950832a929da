// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"net/http"
	"time"
)

// ErrRateLimited reports that a source kept answering HTTP 429 after all
// backoff retries. Distinct from transient failures so callers can log a
// gave-up outcome rather than a broken response.
var ErrRateLimited = errors.New("rate limited after retries")

// RetryBaseDelay controls the base duration for backoff on HTTP 429
// responses. Each attempt waits a uniformly jittered duration in
// [base, 2*base], doubling the base per attempt up to RetryMaxDelay.
// The defaults give a 60-120 s first wait. Tests override these to
// avoid real sleeps.
var (
	RetryBaseDelay = 60 * time.Second
	RetryMaxDelay  = 10 * time.Minute
)

const defaultMaxRetries = 5

// jitterRand is the randomness source for backoff jitter. Replaced in tests
// for determinism.
var jitterRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// Backoff returns the jittered wait before retry number attempt (0-based):
// a uniform duration in [d, 2d] where d = min(RetryBaseDelay<<attempt,
// RetryMaxDelay).
func Backoff(attempt int) time.Duration {
	d := RetryBaseDelay
	for i := 0; i < attempt && d < RetryMaxDelay; i++ {
		d *= 2
	}
	if d > RetryMaxDelay {
		d = RetryMaxDelay
	}
	return d + time.Duration(jitterRand.Int63n(int64(d)+1))
}

// DoWithRetry executes an HTTP request and retries on HTTP 429 (Too Many
// Requests) with jittered exponential backoff. The retry count is bounded:
// retrying forever turns a persistent block into an infinite loop, so after
// maxRetries the last 429 response is returned as-is and the caller reports
// a distinct rate-limited outcome.
//
// When maxRetries is 0 the default (5) is used. On each 429 the response
// body is drained and closed before sleeping. If the context is cancelled
// during a backoff wait the function returns ctx.Err().
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// Exhausted retries — return the 429 response as-is.
		if attempt >= maxRetries {
			return resp, nil
		}

		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(Backoff(attempt)):
		}
	}
}
