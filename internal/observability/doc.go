// Package observability sets up structured logging and OpenTelemetry tracing.
//
// Logs go through log/slog. NewLogger adds trace_id/span_id when the context
// carries a recording span and redacts attributes such as "password".
// Standard output is reserved for command results, so the CLI logs to stderr.
package observability
