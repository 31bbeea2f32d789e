package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/neo4j-graph-examples/network-management/internal/contextkeys"
	"github.com/neo4j-graph-examples/network-management/internal/types"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidLogLevel, types.CodeOf(err))
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLogger_JSONRedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo, FormatJSON)

	logger.Info("connecting", "uri", "neo4j://localhost:7687", "password", "s3cret", "api_key", "abc")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "connecting", entry["msg"])
	assert.Equal(t, "neo4j://localhost:7687", entry["uri"])
	assert.Equal(t, redactedValue, entry["password"])
	assert.Equal(t, redactedValue, entry["api_key"])
	assert.NotContains(t, buf.String(), "s3cret")
}

func TestNewLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo, FormatText)

	logger.Info("lookup finished", "rows", 3)

	assert.Contains(t, buf.String(), "msg=\"lookup finished\"")
	assert.Contains(t, buf.String(), "rows=3")
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn, FormatJSON)

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestTraceHandler_AddsSpanIDs(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelDebug, FormatJSON).With("component", "test")
	logger.InfoContext(ctx, "inside span")

	entry := decodeLine(t, &buf)
	assert.Equal(t, span.SpanContext().TraceID().String(), entry["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), entry["span_id"])
	assert.Equal(t, "test", entry["component"])
}

func TestTraceHandler_NoSpan(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelDebug, FormatJSON)
	logger.InfoContext(context.Background(), "no span")

	entry := decodeLine(t, &buf)
	assert.NotContains(t, entry, "trace_id")
	assert.NotContains(t, entry, "span_id")
}

func TestTraceHandler_AddsRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo, FormatJSON)

	ctx := contextkeys.WithRunID(context.Background(), "run-1")
	logger.InfoContext(ctx, "started")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "run-1", entry["run_id"])
}
