package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSearchItems(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int
	}{
		{name: "one item", payload: `{"items":[{"id":1,"title":"Doe v. Roe"}]}`, want: 1},
		{name: "empty items", payload: `{"items":[]}`, want: 0},
		{name: "missing items", payload: `{"query":"x","count":0}`, want: 0},
		{name: "not an object", payload: `[1,2,3]`, want: 0},
		{name: "items wrong type", payload: `{"items":"nope"}`, want: 0},
		{name: "empty payload", payload: ``, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, DecodeSearchItems(json.RawMessage(tt.payload)), tt.want)
		})
	}
}

func TestCaseSummaryFields(t *testing.T) {
	var items []CaseSummary
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id":1,"title":"Doe v. Roe","court":"Supreme Court","date":"2020-01-01","citations":["123 U.S. 456","7 F.3d 8"]},
		{"id":"us-2007-118","title":"Acme Corp. v. Omega LLC"}
	]`), &items))

	assert.Equal(t, "1", items[0].IDString())
	assert.Equal(t, "cites: 123 U.S. 456, 7 F.3d 8", items[0].CitationLine())

	assert.Equal(t, "us-2007-118", items[1].IDString())
	assert.Empty(t, items[1].CitationLine())
}

func TestDecodeSearchItemsLooseTypes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []CaseSummary
	}{
		{
			name:    "string count",
			payload: `{"count":"1","items":[{"title":"Doe v. Roe","court":"Supreme Court","date":"2020-01-01"}]}`,
			want:    []CaseSummary{{Title: "Doe v. Roe", Court: "Supreme Court", Date: "2020-01-01"}},
		},
		{
			name:    "numeric date",
			payload: `{"items":[{"title":"Doe v. Roe","court":"Supreme Court","date":20200101}]}`,
			want:    []CaseSummary{{Title: "Doe v. Roe", Court: "Supreme Court", Date: "20200101"}},
		},
		{
			name: "one odd item among good ones",
			payload: `{"items":[{"title":"Doe v. Roe","court":"Supreme Court"},` +
				`{"title":"Acme v. Omega","court":7,"citations":["1 F.3d 2",3]}]}`,
			want: []CaseSummary{
				{Title: "Doe v. Roe", Court: "Supreme Court"},
				{Title: "Acme v. Omega", Court: "7", Citations: []string{"1 F.3d 2", "3"}},
			},
		},
		{
			name:    "single citation string",
			payload: `{"items":[{"title":"Doe v. Roe","citations":"123 U.S. 456"}]}`,
			want:    []CaseSummary{{Title: "Doe v. Roe", Citations: []string{"123 U.S. 456"}}},
		},
		{
			name:    "non-object item skipped",
			payload: `{"items":["junk",null,{"title":"Doe v. Roe"}]}`,
			want:    []CaseSummary{{Title: "Doe v. Roe"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeSearchItems(json.RawMessage(tt.payload)))
		})
	}
}

func TestErrorDetail(t *testing.T) {
	assert.Equal(t, "Not Found", ErrorDetail([]byte(`{"detail":"Not Found"}`)))
	assert.JSONEq(t, `[{"loc":["query","q"],"msg":"field required"}]`,
		ErrorDetail([]byte(`{"detail":[{"loc":["query","q"],"msg":"field required"}]}`)))
	assert.Empty(t, ErrorDetail([]byte(`<html>bad gateway</html>`)))
	assert.Empty(t, ErrorDetail([]byte(`{"error":"x"}`)))
}
