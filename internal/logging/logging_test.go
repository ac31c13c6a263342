package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscard(t *testing.T) {
	logger := Discard()
	require.NotNil(t, logger)

	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
	logger.With("k", "v").WithGroup("g").Info("dropped")
}

func TestDefault(t *testing.T) {
	t.Run("nil returns discard", func(t *testing.T) {
		logger := Default(nil)
		require.NotNil(t, logger)
		assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	})

	t.Run("non-nil returns same logger", func(t *testing.T) {
		var buf bytes.Buffer
		original := slog.New(slog.NewTextHandler(&buf, nil))
		assert.Same(t, original, Default(original))
	})
}

func TestNew(t *testing.T) {
	t.Run("text drops debug unless verbose", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, FormatText, false)
		logger.Debug("hidden")
		logger.Info("shown", "records", 2)

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "msg=shown")
		assert.Contains(t, out, "records=2")
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf, FormatText, true).Debug("loaded")
		assert.Contains(t, buf.String(), "level=DEBUG")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf, FormatJSON, false).Info("compiled", "list", "Employee")

		var rec map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "compiled", rec["msg"])
		assert.Equal(t, "Employee", rec["list"])
	})
}
