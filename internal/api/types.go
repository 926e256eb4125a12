// Package api defines the wire types exchanged with the LexChain backend.
//
// The console treats backend payloads as opaque JSON: whatever the backend
// returns is stored and displayed verbatim. The types in this package are
// only used to pick the fields needed for the search result list, so every
// field is optional and decoding is field by field.
package api

import (
	"bytes"
	"encoding/json"
	"strings"
)

// CaseSummary is one item of a case search result.
//
// The shape is owned by the backend. The console never validates it and
// only reads these fields for display.
type CaseSummary struct {
	// ID identifies the case. Backends send numbers or strings, so the raw
	// JSON token is kept.
	ID json.RawMessage `json:"id,omitempty"`

	// Title is the case caption (e.g., "Doe v. Roe").
	Title string `json:"title"`

	// Court is the deciding court.
	Court string `json:"court"`

	// Date is the decision date as sent by the backend (e.g., "2020-01-01").
	Date string `json:"date"`

	// Summary is a short description of the case.
	Summary string `json:"summary,omitempty"`

	// Citations lists cited authorities in backend order. Optional.
	Citations []string `json:"citations,omitempty"`
}

// IDString returns the case id without JSON string quoting.
func (c CaseSummary) IDString() string {
	return text(c.ID)
}

// CitationLine renders the citations as "cites: a, b".
//
// Returns an empty string when the case has no citations.
func (c CaseSummary) CitationLine() string {
	if len(c.Citations) == 0 {
		return ""
	}
	return "cites: " + strings.Join(c.Citations, ", ")
}

// SearchResult mirrors the backend's GET /cases/search payload.
//
// Example:
//
//	{"query": "doe", "count": 1, "items": [{"id": 1, "title": "Doe v. Roe", ...}]}
//
// Only the items list is read. Query and count are kept raw because
// backends disagree on their types.
type SearchResult struct {
	Query json.RawMessage   `json:"query,omitempty"`
	Count json.RawMessage   `json:"count,omitempty"`
	Items []json.RawMessage `json:"items,omitempty"`
}

// DecodeSearchItems extracts the items list from a raw search payload.
//
// Items are decoded one by one. A field of an unexpected type is shown as
// its JSON text; an item that is not an object is skipped. A payload that
// is not an object, or whose items is not a list, yields nil, which callers
// treat as "nothing to list".
func DecodeSearchItems(payload json.RawMessage) []CaseSummary {
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	var result SearchResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil
	}
	var items []CaseSummary
	for _, raw := range result.Items {
		if item, ok := decodeCase(raw); ok {
			items = append(items, item)
		}
	}
	return items
}

func decodeCase(raw json.RawMessage) (CaseSummary, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return CaseSummary{}, false
	}
	c := CaseSummary{
		ID:      fields["id"],
		Title:   text(fields["title"]),
		Court:   text(fields["court"]),
		Date:    text(fields["date"]),
		Summary: text(fields["summary"]),
	}
	if cites := bytes.TrimSpace(fields["citations"]); len(cites) > 0 {
		var list []json.RawMessage
		if err := json.Unmarshal(cites, &list); err == nil {
			for _, cite := range list {
				if s := text(cite); s != "" {
					c.Citations = append(c.Citations, s)
				}
			}
		} else if s := text(cites); s != "" {
			c.Citations = []string{s}
		}
	}
	return c, true
}

// text returns a JSON string's value, or the raw JSON text of any other
// value. Missing and null values yield "".
func text(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// ErrorResponse is the error body the backend returns for rejected requests.
//
// FastAPI-style backends put the message under "detail", either as a string
// or as a list of validation errors.
type ErrorResponse struct {
	Detail json.RawMessage `json:"detail,omitempty"`
}

// ErrorDetail returns the "detail" of an error body as text, or "" when the
// body carries none.
func ErrorDetail(body []byte) string {
	var resp ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	return text(resp.Detail)
}
