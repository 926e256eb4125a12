package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerExposesRecordedMetrics(t *testing.T) {
	RecordBackendCall("health", "ok", 15*time.Millisecond)
	RecordProxyResponse(http.StatusBadGateway)
	RecordRejectedTrigger("search")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)

	assert.Contains(t, text, `lexctl_backend_calls_total{endpoint="health",result="ok"}`)
	assert.Contains(t, text, `lexctl_backend_call_duration_seconds_count{endpoint="health"}`)
	assert.Contains(t, text, `lexctl_proxy_responses_total{code="502"}`)
	assert.Contains(t, text, `lexctl_triggers_rejected_total{operation="search"}`)
}
