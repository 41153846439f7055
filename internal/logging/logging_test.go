package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T, buf *bytes.Buffer, format Format) *Logger {
	t.Helper()
	handler := slog.NewJSONHandler(buf, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if shouldRedact(a.Key) {
				a.Value = slog.StringValue("[REDACTED]")
			}
			return a
		},
	})
	return &Logger{Logger: slog.New(handler), config: DefaultConfig()}
}

func TestShouldRedact(t *testing.T) {
	cases := map[string]bool{
		"password":       true,
		"content":        true,
		"preedit":        true,
		"clipboard_text": true,
		"session_id":     false,
		"mode":           false,
	}
	for key, want := range cases {
		require.Equal(t, want, shouldRedact(key), key)
	}
}

func TestLoggerRedactsSensitiveAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(t, &buf, FormatJSON)

	logger.Info("committed text", "content", "敏感内容", "session_id", "s-1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "[REDACTED]", entry["content"])
	require.Equal(t, "s-1", entry["session_id"])
}

func TestParseLevelRoundTrip(t *testing.T) {
	for _, s := range []string{"debug", "info", "warn", "error"} {
		lvl, err := ParseLevel(s)
		require.NoError(t, err)
		require.Equal(t, s, LevelString(lvl))
	}
	_, err := ParseLevel("bogus")
	require.Error(t, err)
}

func TestDefaultLogPathHasComponentDir(t *testing.T) {
	path := defaultLogPath()
	require.True(t, strings.Contains(path, "suyan") || strings.Contains(path, "SuYan"))
}
