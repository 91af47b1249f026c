// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP client shared by the search and
// generation stages. Requests carry the configured User-Agent, are
// optionally throttled and are traced through otelhttp. The client never
// retries on its own.
package httputil

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// NewClient returns an *http.Client with the configured timeout and
// User-Agent. A zero timeout falls back to types.DefaultHTTPTimeout.
func NewClient(cfg types.HTTPConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = types.DefaultHTTPTimeout
	}

	var base http.RoundTripper = http.DefaultTransport
	if cfg.UserAgent != "" {
		base = &userAgentTransport{next: base, userAgent: cfg.UserAgent}
	}
	if cfg.RequestsPerSecond > 0 {
		base = &throttleTransport{next: base, limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(base),
	}
}

// userAgentTransport sets the User-Agent header on requests that lack one.
type userAgentTransport struct {
	next      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.next.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)
	return t.next.RoundTrip(clone)
}

// throttleTransport waits for the limiter before each request. The wait
// honours the request context.
type throttleTransport struct {
	next    http.RoundTripper
	limiter *rate.Limiter
}

func (t *throttleTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("waiting for request slot: %w", err)
	}
	return t.next.RoundTrip(req)
}
