package courseapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Client is the course platform API client. It owns no business logic:
// it attaches credentials, encodes requests, decodes responses, and
// validates response schemas at the boundary.
type Client struct {
	baseURL     string
	timeout     time.Duration
	httpClient  *http.Client
	tokenSource TokenSource
	resultHook  func(Result)
	tracer      trace.Tracer
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewClient creates a new API client for the given base URL.
// If baseURL is empty, it falls back to the COURSEDESK_API_URL
// environment variable. Options override the defaults.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("COURSEDESK_API_URL")
	}

	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		timeout:  30 * time.Second,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout: c.timeout,
		}
	}

	return c
}

// serverError is the error envelope the API returns on non-2xx
// responses. Either field may carry the message.
type serverError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do performs one HTTP request against the API server.
// body is JSON-encoded when non-nil; result is JSON-decoded and
// schema-validated when non-nil. Connection-level failures are wrapped
// in *ServerUnreachableError, non-2xx responses in *APIError.
func (c *Client) do(ctx context.Context, op, method, path string, body any, result any) error {
	requestID := uuid.NewString()
	start := time.Now()

	var span trace.Span
	if c.tracer != nil {
		ctx, span = c.tracer.Start(ctx, op, trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
			attribute.String("request.id", requestID),
		))
		defer span.End()
	}

	status, err := c.roundTrip(ctx, method, path, requestID, body, result)

	// Schema validation failures are operation failures: the span, the
	// diagnostic log, and the result hook must all see them.
	if err == nil && result != nil {
		if verr := c.validateResponse(result); verr != nil {
			err = &ResponseValidationError{Op: op, Err: verr}
		}
	}

	if span != nil {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
	}
	if err != nil {
		c.logger.Debug("api request failed",
			"op", op,
			"method", method,
			"path", path,
			"request_id", requestID,
			"status", status,
			"error", err,
		)
	}
	if c.resultHook != nil {
		c.resultHook(Result{
			Op:        op,
			Method:    method,
			Path:      path,
			RequestID: requestID,
			Status:    status,
			Duration:  time.Since(start),
			Err:       err,
		})
	}

	return err
}

// roundTrip sends the request and decodes the response body into result.
// It returns the HTTP status code (0 when no response arrived).
func (c *Client) roundTrip(ctx context.Context, method, path, requestID string, body any, result any) (int, error) {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("X-Request-ID", requestID)
	if c.tokenSource != nil {
		if token := c.tokenSource.Token(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Context cancellation is the caller's doing, not a transport fault.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		return 0, &ServerUnreachableError{Cause: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return httpResp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		apiErr := &APIError{
			Status:    httpResp.StatusCode,
			RequestID: requestID,
		}
		var envelope serverError
		if json.Unmarshal(respBody, &envelope) == nil {
			apiErr.Message = envelope.Message
			if apiErr.Message == "" {
				apiErr.Message = envelope.Error
			}
		}
		return httpResp.StatusCode, apiErr
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return httpResp.StatusCode, fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return httpResp.StatusCode, nil
}

// validateResponse runs schema validation over a decoded response.
// Slices are validated element-wise; non-struct scalars pass.
func (c *Client) validateResponse(result any) error {
	v := reflect.ValueOf(result)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		return c.validate.Struct(v.Interface())
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			elem := v.Index(i)
			for elem.Kind() == reflect.Pointer && !elem.IsNil() {
				elem = elem.Elem()
			}
			if elem.Kind() != reflect.Struct {
				continue
			}
			if err := c.validate.Struct(elem.Interface()); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}

// validateInput checks caller-supplied payloads for required-field
// presence before they hit the wire. This mirrors what the form layer
// of the admin UI enforced; real validation stays on the server.
func (c *Client) validateInput(op string, payload any) error {
	if err := c.validate.Struct(payload); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%s: field %q is required or malformed", op, strings.ToLower(verrs[0].Field()))
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
