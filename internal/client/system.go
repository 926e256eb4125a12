// Package client - system.go implements backend status operations.
//
// This file provides the health check and version query. Both return the
// backend payload verbatim.
package client

import (
	"context"
	"encoding/json"
)

// Health checks the backend's health.
//
// This method issues GET {base}/health.
//
// Returns:
//   - The raw JSON body (e.g., {"status":"ok"})
//   - An error if the request fails or the backend answers with a non-2xx status
//
// Example:
//
//	body, err := c.Health(ctx)
//	if err != nil {
//	    log.Fatalf("Backend is unhealthy: %v", err)
//	}
//	fmt.Println(string(body))
func (c *Client) Health(ctx context.Context) (json.RawMessage, error) {
	return c.doRequest(ctx, "health", "/health", nil)
}

// Version retrieves version information from the backend.
//
// This method issues GET {base}/version.
//
// Returns:
//   - The raw JSON body (e.g., {"name":"LexChain API","version":"0.0.1"})
//   - An error if the request fails
func (c *Client) Version(ctx context.Context) (json.RawMessage, error) {
	return c.doRequest(ctx, "version", "/version", nil)
}
