package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	SetOutput(buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetDebug(false)
	})
	return buf
}

func TestInfoFormatsMessage(t *testing.T) {
	buf := captureLogs(t)

	Info("listening on %s:%d", "localhost", 3000)

	assert.Contains(t, buf.String(), "level=INFO")
	assert.Contains(t, buf.String(), "listening on localhost:3000")
}

func TestDebugHiddenUntilEnabled(t *testing.T) {
	buf := captureLogs(t)

	Debug("hidden")
	assert.Empty(t, buf.String())

	SetDebug(true)
	Debug("shown %d", 1)
	assert.Contains(t, buf.String(), "shown 1")
}

func TestSetLevel(t *testing.T) {
	buf := captureLogs(t)

	require.NoError(t, SetLevel("error"))
	Warn("dropped")
	Error("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")

	assert.Error(t, SetLevel("loud"))
	require.NoError(t, SetLevel("info"))
}
