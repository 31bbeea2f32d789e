package observability

import "github.com/neo4j-graph-examples/network-management/internal/types"

const (
	ErrCodeTracingInit     types.ErrorCode = "TRACING_INIT_FAILED"
	ErrCodeTracingShutdown types.ErrorCode = "TRACING_SHUTDOWN_FAILED"
	ErrCodeMetricsInit     types.ErrorCode = "METRICS_INIT_FAILED"
	ErrCodeMetricsShutdown types.ErrorCode = "METRICS_SHUTDOWN_FAILED"
	ErrCodeInvalidLogLevel types.ErrorCode = "INVALID_LOG_LEVEL"
)
