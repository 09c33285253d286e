package sectool

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Tool.
type Option interface {
	apply(*toolConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*toolConfig)

func (f optionFunc) apply(c *toolConfig) { f(c) }

type toolConfig struct {
	defaultAPIKey string
	baseURL       string
	timeout       time.Duration
	httpClient    *http.Client
	client        APIClient

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithDefaultAPIKey sets the key used when New receives an empty one.
// An explicit key always wins.
func WithDefaultAPIKey(key string) Option {
	return optionFunc(func(c *toolConfig) {
		c.defaultAPIKey = key
	})
}

// WithBaseURL overrides the SEC API endpoint. Default: https://api.sec-api.io.
func WithBaseURL(u string) Option {
	return optionFunc(func(c *toolConfig) {
		c.baseURL = u
	})
}

// WithHTTPClient sets the HTTP client for SEC API calls. WithTimeout is ignored when set.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *toolConfig) {
		c.httpClient = hc
	})
}

// WithTimeout sets the per-request timeout. Default: 30s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *toolConfig) {
		c.timeout = d
	})
}

// WithClient replaces the built-in HTTP binding. The API key is still required.
func WithClient(cl APIClient) Option {
	return optionFunc(func(c *toolConfig) {
		c.client = cl
	})
}

// WithLogger enables structured logging for tool operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *toolConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *toolConfig) {
		c.metricsReg = reg
	})
}
