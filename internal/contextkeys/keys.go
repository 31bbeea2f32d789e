// Package contextkeys defines context keys shared between the CLI and the
// logging handlers without either importing the other.
package contextkeys

import "context"

// Key is the type for all netmgmt context keys.
type Key string

const (
	// RunID identifies one CLI invocation. Every log record emitted with a
	// context carrying it is tagged run_id.
	RunID Key = "netmgmt.run_id"
)

// WithRunID returns a new context with the run ID set.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunID, runID)
}

// GetRunID retrieves the run ID from context.
// Returns empty string if not set.
func GetRunID(ctx context.Context) string {
	if v, ok := ctx.Value(RunID).(string); ok {
		return v
	}
	return ""
}
