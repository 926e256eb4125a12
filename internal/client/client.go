// Package client provides an HTTP client for the LexChain backend API.
//
// The client issues plain GET requests under a configured base URL and hands
// back the raw JSON body. It does not interpret payloads: the console stores
// and renders whatever the backend returns. It provides:
//   - Health, Version and SearchCases calls
//   - Uniform status handling (any non-2xx response is an error)
//   - Request ids for correlating console and backend logs
//
// Example usage:
//
//	c := client.NewClient("http://localhost:3000/lexapi")
//	body, err := c.Health(ctx)
//	if err != nil {
//	    log.Fatalf("Backend unhealthy: %v", err)
//	}
package client

import (
	"net/http"
	"strings"
	"time"
)

// Client is the HTTP client for communicating with the LexChain backend.
//
// All methods are safe for concurrent use.
type Client struct {
	// baseURL is the absolute base every endpoint path is appended to.
	// Format: "http://host:port/prefix" (e.g., "http://localhost:3000/lexapi")
	baseURL string

	// httpClient is the underlying HTTP client used for requests.
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout bounds each request. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new client for the backend reachable under baseURL.
//
// The client is created without a request timeout; in-flight calls end only
// when the transport gives up or the caller's context is cancelled.
//
// Parameters:
//   - baseURL: The absolute base URL (e.g., "http://localhost:3000/lexapi")
//   - opts: Optional settings such as WithTimeout
//
// Returns:
//   - A pointer to a configured Client ready for use.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
