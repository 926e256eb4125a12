package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexchain/lexctl/internal/logger"
)

func newBackend(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestHealth(t *testing.T) {
	var gotPath, gotRequestID, gotAccept string
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get(RequestIDHeader)
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	body, err := NewClient(srv.URL+"/lexapi/").Health(context.Background())
	require.NoError(t, err)

	assert.JSONEq(t, `{"status":"ok"}`, string(body))
	assert.Equal(t, "/lexapi/health", gotPath)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "application/json", gotAccept)
}

func TestVersion(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/version", r.URL.Path)
		_, _ = w.Write([]byte(`{"name":"LexChain API","version":"0.0.1"}`))
	})

	body, err := NewClient(srv.URL).Version(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"LexChain API","version":"0.0.1"}`, string(body))
}

func TestSearchCasesEncodesQuery(t *testing.T) {
	var gotQuery string
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cases/search", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`{"items":[]}`))
	})

	_, err := NewClient(srv.URL).SearchCases(context.Background(), "Doe v. Roe & co?")
	require.NoError(t, err)
	assert.Equal(t, "Doe v. Roe & co?", gotQuery)
}

func TestNonSuccessStatus(t *testing.T) {
	for _, code := range []int{http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusInternalServerError, http.StatusMultipleChoices} {
		srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
			_, _ = w.Write([]byte(`{"detail":"nope"}`))
		})

		_, err := NewClient(srv.URL).Health(context.Background())
		require.Error(t, err)

		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, code, statusErr.StatusCode)
		assert.Equal(t, fmt.Sprintf("HTTP %d", code), err.Error())
	}
}

func TestInvalidJSON(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway</html>`))
	})

	_, err := NewClient(srv.URL).Version(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := NewClient(base).Health(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot reach backend")

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestTimeout(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	})

	_, err := NewClient(srv.URL, WithTimeout(20*time.Millisecond)).Health(context.Background())
	assert.Error(t, err)
}

func TestWithHTTPClient(t *testing.T) {
	var calls int
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		return http.DefaultTransport.RoundTrip(r)
	})}

	_, err := NewClient(srv.URL, WithHTTPClient(hc)).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestStatusErrorDetailLogged(t *testing.T) {
	var logs bytes.Buffer
	logger.SetOutput(&logs)
	logger.SetDebug(true)
	t.Cleanup(func() {
		logger.SetOutput(os.Stderr)
		logger.SetDebug(false)
	})

	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"query too short"}`))
	})

	_, err := NewClient(srv.URL).SearchCases(context.Background(), "a")
	require.Error(t, err)
	assert.Equal(t, "HTTP 422", err.Error())
	assert.Contains(t, logs.String(), "HTTP 422: query too short")
}
