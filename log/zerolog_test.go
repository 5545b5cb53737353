package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerolog(zerolog.New(&buf))

	l.Info("state updated",
		String("state", "todos"),
		Int("count", 3),
		Bool("once", true),
		Duration("took", time.Second),
		Err(errors.New("boom")),
		Any("ids", []string{"1", "2"}),
	)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "info", rec["level"])
	assert.Equal(t, "state updated", rec["message"])
	assert.Equal(t, "todos", rec["state"])
	assert.Equal(t, float64(3), rec["count"])
	assert.Equal(t, true, rec["once"])
	assert.Equal(t, "boom", rec["error"])
	assert.Equal(t, []any{"1", "2"}, rec["ids"])
}

func TestZerologLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerolog(zerolog.New(&buf).Level(zerolog.WarnLevel))

	l.Debug("hidden")
	l.Info("hidden")
	assert.Zero(t, buf.Len())

	l.Error("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewConsoleFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsole(&buf, "nonsense")

	l.Debug("hidden")
	assert.Zero(t, buf.Len())

	l.Info("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNoopDiscards(t *testing.T) {
	var l Logger = Noop{}
	assert.NotPanics(t, func() {
		l.Debug("x")
		l.Info("x")
		l.Warn("x")
		l.Error("x", Err(errors.New("y")))
	})
}
