package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/arun-kumar-js/heal-doc/internal/telemetry"
)

var tracer = otel.Tracer("github.com/arun-kumar-js/heal-doc/internal/api")

// Response is the common JSON envelope the healto API wraps data in.
type Response struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Gateway is the single entry point every component uses to reach the
// remote API. Calls never panic; all failure modes come back as typed
// errors from the taxonomy in errors.go.
type Gateway interface {
	Do(ctx context.Context, endpoint Endpoint, method string, body any, query url.Values) (*Response, error)
	DoRaw(ctx context.Context, endpoint Endpoint, method string, body any, query url.Values) (json.RawMessage, error)
	Upload(ctx context.Context, endpoint Endpoint, fields map[string]string, fileField, filePath string) (*Response, error)
	SetAuthToken(token string)
}

// Client implements Gateway over HTTP JSON with a fixed base URL and
// request timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
	metrics    *telemetry.Metrics

	tokenMux  sync.RWMutex
	authToken string
}

// Ensure Client implements Gateway
var _ Gateway = (*Client)(nil)

// NewClient creates a gateway client. metrics may be nil.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger, metrics *telemetry.Metrics) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
		metrics:    metrics,
	}
}

// SetAuthToken sets the bearer token attached to subsequent requests.
// An empty token removes the header.
func (c *Client) SetAuthToken(token string) {
	c.tokenMux.Lock()
	c.authToken = token
	c.tokenMux.Unlock()
}

func (c *Client) token() string {
	c.tokenMux.RLock()
	defer c.tokenMux.RUnlock()
	return c.authToken
}

// Do performs a request and interprets the standard response envelope:
// a falsy payload status becomes an *APIError.
func (c *Client) Do(ctx context.Context, endpoint Endpoint, method string, body any, query url.Values) (*Response, error) {
	raw, err := c.DoRaw(ctx, endpoint, method, body, query)
	if err != nil {
		return nil, err
	}

	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &APIError{Message: "malformed response payload"}
	}
	if !resp.Status {
		return nil, &APIError{Message: resp.Message}
	}

	return &resp, nil
}

// DoRaw performs a request and returns the body verbatim. Login uses
// this because its success shape carries no status envelope.
func (c *Client) DoRaw(ctx context.Context, endpoint Endpoint, method string, body any, query url.Values) (json.RawMessage, error) {
	if !knownEndpoints[endpoint] {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, endpoint)
	}

	var reader io.Reader
	if body != nil && (method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch) {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.requestURL(endpoint, query), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(ctx, req, endpoint, method)
}

// Upload performs a multipart POST, attaching fields plus one file.
// The profile update endpoint uses this when an image is selected.
func (c *Client) Upload(ctx context.Context, endpoint Endpoint, fields map[string]string, fileField, filePath string) (*Response, error) {
	if !knownEndpoints[endpoint] {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, endpoint)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open upload file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("failed to write multipart field: %w", err)
		}
	}
	part, err := w.CreateFormFile(fileField, filepath.Base(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart file part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("failed to copy upload file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL(endpoint, nil), &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	raw, err := c.send(ctx, req, endpoint, http.MethodPost)
	if err != nil {
		return nil, err
	}

	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &APIError{Message: "malformed response payload"}
	}
	if !resp.Status {
		return nil, &APIError{Message: resp.Message}
	}
	return &resp, nil
}

func (c *Client) requestURL(endpoint Endpoint, query url.Values) string {
	u := c.baseURL + string(endpoint)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) send(ctx context.Context, req *http.Request, endpoint Endpoint, method string) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, method+" "+string(endpoint),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("api.endpoint", string(endpoint)),
		))
	defer span.End()
	req = req.WithContext(ctx)

	if t := c.token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	requestID := uuid.New().String()
	start := time.Now()

	c.log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("endpoint", string(endpoint)).
		Msg("api request start")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		c.metrics.RecordAPIRequest(ctx, string(endpoint), method, "network_error", msSince(start))
		c.log.Warn().
			Str("request_id", requestID).
			Str("endpoint", string(endpoint)).
			Err(err).
			Msg("api request transport failure")
		return nil, &NetworkError{Err: err}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		c.metrics.RecordAPIRequest(ctx, string(endpoint), method, "network_error", msSince(start))
		return nil, &NetworkError{Err: err}
	}

	span.SetAttributes(attribute.Int("http.status_code", httpResp.StatusCode))

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		span.SetStatus(codes.Error, httpResp.Status)
		c.metrics.RecordAPIRequest(ctx, string(endpoint), method, "http_error", msSince(start))
		c.log.Warn().
			Str("request_id", requestID).
			Str("endpoint", string(endpoint)).
			Int("status", httpResp.StatusCode).
			Msg("api request http failure")
		return nil, &HTTPError{Status: httpResp.StatusCode, Body: truncate(string(body), 512)}
	}

	c.metrics.RecordAPIRequest(ctx, string(endpoint), method, "success", msSince(start))
	c.log.Debug().
		Str("request_id", requestID).
		Str("endpoint", string(endpoint)).
		Dur("duration", time.Since(start)).
		Msg("api request end")

	return json.RawMessage(body), nil
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
