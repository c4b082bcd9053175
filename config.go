package rettiwt

import (
	"log/slog"

	"github.com/anatolykoptev/go-stealth/ratelimit"
)

// ClientConfig holds all configuration for the client.
type ClientConfig struct {
	// APIKey is the stored session key (base64-encoded cookie string).
	// Leave empty for a guest-level client; a guest credential is then
	// acquired lazily on first use.
	APIKey string

	// Proxy is the proxy URL for the default transport.
	Proxy string

	// UserAgent overrides the browser User-Agent on authenticated requests.
	UserAgent string

	// RateLimit configures client-side per-resource rate limiting.
	RateLimit ratelimit.Config

	// Transport overrides the default stealth transport. Mainly for tests.
	Transport Transport

	// ErrorHandler, when set, gets a look at failed exchanges before the
	// error reaches the caller. It must not be used for retries.
	ErrorHandler ErrorHandler

	// Logger is the structured event sink. Discards by default; it never
	// alters control flow.
	Logger *slog.Logger
}

// defaults fills in zero-value config fields.
func (cfg *ClientConfig) defaults() {
	if cfg.RateLimit.RequestsPerWindow == 0 {
		cfg.RateLimit = ratelimit.DefaultConfig
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
}
