package rettiwt

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/ratelimit"
)

// Transport executes one request descriptor and returns the raw JSON body.
// Implementations own proxying, timeouts, and any retry policy; the client
// above them performs none of that. A non-2xx response or a rate limit is
// returned as a *APIError.
type Transport interface {
	Do(ctx context.Context, req *Request) ([]byte, error)
}

// stealthTransport is the default Transport, backed by a browser-TLS client
// with fixed header ordering and client-side per-resource rate limiting.
type stealthTransport struct {
	client  *stealth.BrowserClient
	limiter *ratelimit.Limiter
	log     *slog.Logger
}

func newStealthTransport(proxy string, rl ratelimit.Config, log *slog.Logger) (*stealthTransport, error) {
	opts := []stealth.ClientOption{
		stealth.WithHeaderOrder(apiHeaderOrder),
	}
	if proxy != "" {
		opts = append(opts, stealth.WithProxy(proxy))
	}
	bc, err := stealth.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("stealth client: %w", err)
	}
	return &stealthTransport{
		client:  bc,
		limiter: ratelimit.NewLimiter(rl),
		log:     log,
	}, nil
}

func (t *stealthTransport) Do(ctx context.Context, req *Request) ([]byte, error) {
	endpoint := string(req.Resource)

	if !t.limiter.Allow(endpoint) {
		return nil, &APIError{
			Resource: req.Resource,
			Status:   429,
			Body:     fmt.Sprintf("client-side rate limit, retry after %s", t.limiter.AvailableAt(endpoint)),
		}
	}

	// Anti-fingerprint jitter
	if err := stealth.DefaultJitter.Sleep(ctx); err != nil {
		return nil, err
	}

	var payload io.Reader
	if len(req.Body) > 0 {
		payload = bytes.NewReader(req.Body)
	}
	body, respHdrs, status, err := t.client.DoWithHeaderOrder(req.Method, req.URL, req.Headers, payload, apiHeaderOrder)
	if err != nil {
		return nil, &APIError{Resource: req.Resource, Err: err}
	}

	switch {
	case status == 429:
		reset := parseRateLimitReset(respHdrs["x-rate-limit-reset"])
		t.limiter.MarkRateLimited(endpoint, reset)
		t.log.Warn("rate limited", slog.String("resource", endpoint), slog.Time("reset", reset))
		return nil, &APIError{Resource: req.Resource, Status: status, Body: truncateBytes(body, 200)}
	case status < 200 || status > 299:
		return nil, &APIError{
			Resource: req.Resource,
			Status:   status,
			Code:     classifyError(body),
			Body:     truncateBytes(body, 200),
		}
	}
	return body, nil
}
