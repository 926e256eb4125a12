package view

import (
	"bytes"
	"context"
	"encoding/json"
	"html"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexchain/lexctl/internal/client"
)

const oneCase = `{"items":[{"id":1,"title":"Doe v. Roe","court":"Supreme Court","date":"2020-01-01","summary":"...","citations":["123 U.S. 456"]}]}`

func mockBackend(t *testing.T, routes map[string]string) *client.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return client.NewClient(srv.URL)
}

func renderPage(t *testing.T, s State) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, NewPage(s, "/lexapi", "http://localhost:8000")))
	return html.UnescapeString(buf.String())
}

func renderText(t *testing.T, s State, ops ...Operation) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, s, ops...))
	return buf.String()
}

func TestRenderHealthPayload(t *testing.T) {
	ctrl := NewController(mockBackend(t, map[string]string{"/health": `{"status":"ok"}`}))
	require.NoError(t, ctrl.CheckHealth(context.Background()))

	assert.Contains(t, renderPage(t, ctrl.State()), `"status": "ok"`)
	assert.Contains(t, renderText(t, ctrl.State(), OpHealth), `"status": "ok"`)
}

func TestRenderSearchList(t *testing.T) {
	ctrl := NewController(mockBackend(t, map[string]string{"/cases/search": oneCase}))
	require.NoError(t, ctrl.Search(context.Background(), "doe"))

	out := renderPage(t, ctrl.State())
	assert.Equal(t, 1, strings.Count(out, `class="case"`))
	for _, want := range []string{"Doe v. Roe", "Supreme Court", "2020-01-01", "cites: 123 U.S. 456"} {
		assert.Contains(t, out, want)
	}

	text := renderText(t, ctrl.State(), OpSearch)
	assert.Contains(t, text, "Results (1)")
	assert.Contains(t, text, "- Doe v. Roe")
	assert.Contains(t, text, "Supreme Court · 2020-01-01")
	assert.Contains(t, text, "cites: 123 U.S. 456")
}

func TestRenderSearchWithoutItems(t *testing.T) {
	for _, body := range []string{`{"items":[]}`, `{"query":"zzz","count":0}`} {
		s := Succeed(State{}, OpSearch, json.RawMessage(body))

		out := renderPage(t, s)
		assert.NotContains(t, out, `id="results"`)
		assert.Contains(t, out, `id="search"`)

		text := renderText(t, s, OpSearch)
		assert.NotContains(t, text, "Results")
		assert.True(t, strings.HasPrefix(text, "Search\n{"))
	}
}

func TestRenderCitationsOnlyWhenPresent(t *testing.T) {
	s := Succeed(State{}, OpSearch, json.RawMessage(`{"items":[{"title":"Acme Corp. v. Omega LLC","court":"9th Circuit","date":"2007-11-02","citations":[]}]}`))

	assert.NotContains(t, renderPage(t, s), "cites:")
	assert.NotContains(t, renderText(t, s), "cites:")
}

func TestRenderBusyAndError(t *testing.T) {
	idle := renderPage(t, State{})
	assert.NotContains(t, idle, "disabled")
	assert.NotContains(t, idle, `id="busy"`)
	assert.Contains(t, idle, `<pre id="health">null</pre>`)

	busy := renderPage(t, Begin(State{}, OpHealth))
	assert.Equal(t, 3, strings.Count(busy, " disabled"))
	assert.Contains(t, busy, `id="busy"`)

	failed := renderPage(t, Fail(State{}, OpVersion, "HTTP 502"))
	assert.Contains(t, failed, "Error: HTTP 502")
}

func TestRenderEscapesPayload(t *testing.T) {
	s := Succeed(State{}, OpSearch, json.RawMessage(`{"items":[{"title":"<script>alert(1)</script>"}]}`))

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, NewPage(s, "/lexapi", "")))
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
}

func TestPrettyJSON(t *testing.T) {
	assert.Equal(t, "null", PrettyJSON(nil))
	assert.Equal(t, "{\n  \"a\": [\n    1\n  ]\n}", PrettyJSON(json.RawMessage(`{"a":[1]}`)))
	assert.Equal(t, "not json", PrettyJSON(json.RawMessage(`not json`)))
}

func TestRenderSearchListWithLooseTypes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		titles  []string
		lines   []string
	}{
		{
			name:    "string count",
			payload: `{"count":"1","items":[{"title":"Doe v. Roe","court":"Supreme Court","date":"2020-01-01"}]}`,
			titles:  []string{"Doe v. Roe"},
			lines:   []string{"Supreme Court · 2020-01-01"},
		},
		{
			name:    "numeric date",
			payload: `{"items":[{"title":"Doe v. Roe","court":"Supreme Court","date":20200101}]}`,
			titles:  []string{"Doe v. Roe"},
			lines:   []string{"Supreme Court · 20200101"},
		},
		{
			name: "numeric court on second item",
			payload: `{"items":[{"title":"Doe v. Roe","court":"Supreme Court","date":"2020-01-01"},` +
				`{"title":"Acme v. Omega","court":7,"date":"2007-11-02"}]}`,
			titles: []string{"Doe v. Roe", "Acme v. Omega"},
			lines:  []string{"7 · 2007-11-02"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Succeed(State{}, OpSearch, json.RawMessage(tt.payload))

			require.Len(t, NewPage(s, "/lexapi", "").Items, len(tt.titles))

			page := renderPage(t, s)
			text := renderText(t, s, OpSearch)
			assert.Equal(t, len(tt.titles), strings.Count(page, `class="case"`))
			for _, title := range tt.titles {
				assert.Contains(t, page, title)
				assert.Contains(t, text, "- "+title)
			}
			for _, line := range tt.lines {
				assert.Contains(t, text, line)
			}
		})
	}
}
