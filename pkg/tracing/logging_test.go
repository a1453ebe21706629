package tracing_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/kluars/pkg/tracing"
)

func TestLoggingTracer(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	span := tracing.NewLoggingTracer(logger).StartSpan("evaluate")
	span.SetBaggageItem("script", "pod.lua")
	span.Finish()

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "trace", got["msg"])
	assert.Equal(t, "DEBUG", got["level"])
	assert.Equal(t, "evaluate", got["operation_name"])
	assert.Equal(t, "pod.lua", got["script"])
	assert.Contains(t, got, "time_ms")
}

func TestLoggingTracer_BelowLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	tracing.NewLoggingTracer(logger).StartSpan("apply").Finish()
	assert.Empty(t, buf.String())
}

func TestNopTracer(t *testing.T) {
	t.Parallel()

	span := tracing.NopTracer{}.StartSpan("apply")
	span.SetBaggageItem("documents", 3)
	span.Finish()
}
