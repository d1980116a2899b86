package courseapi

import (
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Option is a functional option for configuring a Client.
type Option func(*Client)

// TokenSource supplies the bearer credential attached to every request.
// It is consulted per call, so the credential can change over the
// client's lifetime (login, logout).
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource that always returns the same credential.
type StaticToken string

// Token returns the static credential.
func (t StaticToken) Token() string { return string(t) }

// WithTokenSource sets the credential source for outbound requests.
// Requests are sent without an Authorization header when the source is
// nil or returns an empty token.
func WithTokenSource(src TokenSource) Option {
	return func(c *Client) {
		c.tokenSource = src
	}
}

// WithTimeout sets the HTTP request timeout.
// If not set, defaults to 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient sets a custom http.Client for making requests.
// This is useful for testing, proxying, or custom transport configurations.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger for client diagnostics.
// If not set, defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTracerProvider enables a trace span per API request using the
// given provider. If not set, requests are not traced.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracer = tp.Tracer("github.com/coursedesk/coursedesk/pkg/courseapi")
	}
}

// Result describes the outcome of one API request, delivered to the
// hook installed with WithResultHook.
type Result struct {
	// Op is the gateway operation name (e.g. "categories.create").
	Op string
	// Method and Path identify the HTTP request that was sent.
	Method string
	Path   string
	// RequestID is the client-generated identifier for the request.
	RequestID string
	// Status is the HTTP status code, or 0 when no response arrived.
	Status int
	// Duration is the wall-clock time the request took.
	Duration time.Duration
	// Err is the error the operation returned, nil on success.
	Err error
}

// WithResultHook installs a hook invoked after every API request,
// success or failure. Used to feed the local activity log.
func WithResultHook(hook func(Result)) Option {
	return func(c *Client) {
		c.resultHook = hook
	}
}
