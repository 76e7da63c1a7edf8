package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" WARN "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewSlogJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlog(SlogConfig{Level: "info", Format: "json", Service: "communityapp", Output: &buf})

	l.Debug("hidden")
	l.Info("board saved", "board_id", 7)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "board saved", rec["msg"])
	assert.Equal(t, "communityapp", rec["service"])
	assert.EqualValues(t, 7, rec["board_id"])
	assert.NotEmpty(t, rec["time"])
}

func TestNewSlogText(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlog(SlogConfig{Level: "debug", Format: "text", Output: &buf})

	l.Debug("comment listed", "count", 0)
	assert.Contains(t, buf.String(), "comment listed")
	assert.Contains(t, buf.String(), "count=0")
}
