package observability

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/neo4j-graph-examples/network-management/internal/contextkeys"
	"github.com/neo4j-graph-examples/network-management/internal/types"
)

// Log formats accepted by NewLogger.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// redactedValue replaces the value of sensitive attributes.
const redactedValue = "[REDACTED]"

var sensitiveKeys = map[string]bool{
	"password":   true,
	"secret":     true,
	"token":      true,
	"credential": true,
	"apikey":     true,
	"auth":       true,
}

// ParseLevel maps debug|info|warn|error (case-insensitive) to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, types.NewError(ErrCodeInvalidLogLevel, "unknown log level: "+level)
	}
}

// NewLogger builds a logger writing format ("json" or "text") to w at level.
// Records are correlated with the active span and sensitive attributes are redacted.
func NewLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redactAttr,
	}

	var handler slog.Handler
	if strings.EqualFold(format, FormatJSON) {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(NewTraceHandler(handler))
}

// redactAttr hides the value of attributes whose key names a secret.
func redactAttr(groups []string, a slog.Attr) slog.Attr {
	normalized := strings.ToLower(strings.ReplaceAll(a.Key, "_", ""))
	if sensitiveKeys[normalized] {
		return slog.String(a.Key, redactedValue)
	}
	return a
}

// TraceHandler adds run_id, trace_id and span_id from the record's context.
type TraceHandler struct {
	inner slog.Handler
}

// NewTraceHandler wraps inner with trace correlation.
func NewTraceHandler(inner slog.Handler) *TraceHandler {
	return &TraceHandler{inner: inner}
}

func (h *TraceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *TraceHandler) Handle(ctx context.Context, record slog.Record) error {
	if runID := contextkeys.GetRunID(ctx); runID != "" {
		record.AddAttrs(slog.String("run_id", runID))
	}
	if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
		record.AddAttrs(
			slog.String("trace_id", spanCtx.TraceID().String()),
			slog.String("span_id", spanCtx.SpanID().String()),
		)
	}
	return h.inner.Handle(ctx, record)
}

func (h *TraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TraceHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *TraceHandler) WithGroup(name string) slog.Handler {
	return &TraceHandler{inner: h.inner.WithGroup(name)}
}
