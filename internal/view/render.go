package view

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/lexchain/lexctl/internal/api"
)

//go:embed templates/page.html.tmpl
var pageTemplate string

var page = template.Must(template.New("page").Parse(pageTemplate))

// PrettyJSON formats a payload with two-space indentation. A missing
// payload renders as "null"; a payload that is not valid JSON is returned
// unchanged.
func PrettyJSON(payload json.RawMessage) string {
	if len(bytes.TrimSpace(payload)) == 0 {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err != nil {
		return string(payload)
	}
	return buf.String()
}

// Page is the data handed to the HTML template.
type Page struct {
	State      State
	BasePath   string
	BackendURL string
	Health     string
	Version    string
	Search     string
	Items      []api.CaseSummary
}

// NewPage projects s into template data.
func NewPage(s State, basePath, backendURL string) Page {
	return Page{
		State:      s,
		BasePath:   basePath,
		BackendURL: backendURL,
		Health:     PrettyJSON(s.Health.Payload),
		Version:    PrettyJSON(s.Version.Payload),
		Search:     PrettyJSON(s.Search.Payload),
		Items:      api.DecodeSearchItems(s.Search.Payload),
	}
}

// RenderHTML writes the console page for p.
func RenderHTML(w io.Writer, p Page) error {
	if err := page.Execute(w, p); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// RenderText writes a plain-text projection of the given operations' slots.
//
// Each section shows the raw JSON of the stored payload. The search section
// additionally lists the result items when there are any.
func RenderText(w io.Writer, s State, ops ...Operation) error {
	if len(ops) == 0 {
		ops = Operations
	}
	var b strings.Builder
	for i, op := range ops {
		if i > 0 {
			b.WriteString("\n")
		}
		o := s.Outcome(op)
		fmt.Fprintf(&b, "%s\n", sectionTitle(op))
		b.WriteString(PrettyJSON(o.Payload))
		b.WriteString("\n")
		if op == OpSearch {
			writeItems(&b, api.DecodeSearchItems(o.Payload))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeItems(b *strings.Builder, items []api.CaseSummary) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\nResults (%d)\n", len(items))
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item.Title)
		fmt.Fprintf(b, "  %s · %s\n", item.Court, item.Date)
		if item.Summary != "" {
			fmt.Fprintf(b, "  %s\n", item.Summary)
		}
		if line := item.CitationLine(); line != "" {
			fmt.Fprintf(b, "  %s\n", line)
		}
	}
}

func sectionTitle(op Operation) string {
	switch op {
	case OpHealth:
		return "Health"
	case OpVersion:
		return "Version"
	default:
		return "Search"
	}
}
