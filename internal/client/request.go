// Package client - request.go implements low-level HTTP request handling.
//
// This file provides the request/response logic shared by all API methods:
// request creation, status validation and body parsing.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/lexchain/lexctl/internal/api"
	"github.com/lexchain/lexctl/internal/logger"
	"github.com/lexchain/lexctl/internal/metrics"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// StatusError reports a response whose status is outside the 2xx range.
type StatusError struct {
	// StatusCode is the HTTP status returned by the backend.
	StatusCode int

	// Body is the raw response body, kept for debugging.
	Body []byte
}

// Error implements error. The message is "HTTP <status>".
func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// ErrInvalidJSON is returned when a success response does not carry JSON.
var ErrInvalidJSON = errors.New("response is not valid JSON")

// doRequest performs a GET request against the backend.
//
// This is an internal helper used by all public API methods. It:
//   - Builds the URL from the base URL, path and query
//   - Executes the request with the caller's context
//   - Treats any status outside 200-299 as a *StatusError
//   - Verifies that a success body is valid JSON
//
// Parameters:
//   - ctx: Request context for cancellation
//   - endpoint: Metric label for the call (e.g., "health")
//   - path: API endpoint path (e.g., "/health")
//   - query: Query parameters (nil for none)
//
// Returns:
//   - The raw JSON body on success
//   - A *StatusError for non-success statuses
//   - A wrapped transport or parse error otherwise
func (c *Client) doRequest(ctx context.Context, endpoint, path string, query url.Values) (json.RawMessage, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordBackendCall(endpoint, "transport_error", time.Since(start))
		return nil, fmt.Errorf("cannot reach backend at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordBackendCall(endpoint, "transport_error", time.Since(start))
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	logger.Debug("GET %s -> %d (%s, request_id=%s)", target, resp.StatusCode, time.Since(start).Round(time.Millisecond), requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordBackendCall(endpoint, "http_error", time.Since(start))
		if detail := api.ErrorDetail(data); detail != "" {
			logger.Debug("GET %s: HTTP %d: %s", target, resp.StatusCode, detail)
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: data}
	}

	if !json.Valid(data) {
		metrics.RecordBackendCall(endpoint, "parse_error", time.Since(start))
		return nil, fmt.Errorf("failed to parse response: %w", ErrInvalidJSON)
	}

	metrics.RecordBackendCall(endpoint, "ok", time.Since(start))
	return json.RawMessage(data), nil
}
