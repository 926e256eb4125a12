// Package client - cases.go implements case search.
package client

import (
	"context"
	"encoding/json"
	"net/url"
)

// SearchCases runs a free-text case search.
//
// This method issues GET {base}/cases/search?q=<query>. The query is sent
// as given; callers decide whether a blank query is worth sending.
//
// Parameters:
//   - ctx: Request context
//   - query: Search text, URL-encoded by the client
//
// Returns:
//   - The raw JSON body, typically {"query": ..., "count": ..., "items": [...]}
//   - An error if the request fails
//
// Example:
//
//	body, err := c.SearchCases(ctx, "Doe v. Roe")
func (c *Client) SearchCases(ctx context.Context, query string) (json.RawMessage, error) {
	return c.doRequest(ctx, "search", "/cases/search", url.Values{"q": {query}})
}
