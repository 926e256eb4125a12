// Package handlers - proxy.go implements the backend rewrite proxy.
//
// Requests under the API base path are forwarded to the backend with the
// prefix removed, so GET /lexapi/cases/search?q=doe reaches
// {backend}/cases/search?q=doe. Methods, headers, bodies and status codes are
// passed through unchanged.
package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/lexchain/lexctl/internal/logger"
	"github.com/lexchain/lexctl/internal/metrics"
)

// NewBackendProxy returns middleware that forwards requests under prefix to
// backendURL.
//
// Parameters:
//   - prefix: Path prefix to strip (e.g., "/lexapi")
//   - backendURL: Upstream root URL (e.g., "http://localhost:8000")
//
// Returns:
//   - The proxy middleware; it never calls the next handler
//   - An error if backendURL is not an absolute URL
func NewBackendProxy(prefix, backendURL string) (echo.MiddlewareFunc, error) {
	target, err := url.Parse(backendURL)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q", backendURL)
	}
	prefix = "/" + strings.Trim(prefix, "/")

	balancer := middleware.NewRoundRobinBalancer([]*middleware.ProxyTarget{
		{Name: "backend", URL: target},
	})

	return middleware.ProxyWithConfig(middleware.ProxyConfig{
		Balancer: balancer,
		Rewrite: map[string]string{
			prefix:        "/",
			prefix + "/*": "/$1",
		},
		ModifyResponse: func(resp *http.Response) error {
			metrics.RecordProxyResponse(resp.StatusCode)
			logger.Debug("proxy %s %s -> %d", resp.Request.Method, resp.Request.URL, resp.StatusCode)
			return nil
		},
	}), nil
}
