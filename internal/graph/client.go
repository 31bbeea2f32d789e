package graph

import (
	"context"
	"net/url"
	"time"

	"github.com/neo4j-graph-examples/network-management/internal/types"
)

// GraphClient is the subset of graph database operations the network tooling needs.
// Implementations must be safe for concurrent use.
type GraphClient interface {
	// Connect establishes the connection and verifies the server is reachable.
	Connect(ctx context.Context) error

	// Close releases the underlying driver. Closing an unconnected client is a no-op.
	Close(ctx context.Context) error

	// Health probes the server and reports the connection state.
	Health(ctx context.Context) types.HealthStatus

	// Query runs cypher inside a read transaction and collects every record eagerly.
	Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error)

	// ExecuteWrite runs cypher inside a write transaction.
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (QueryResult, error)
}

// QueryResult holds the fully materialized rows of a statement.
type QueryResult struct {
	// Records are the rows in server order, keyed by column name.
	Records []map[string]any

	// Columns are the result keys in projection order.
	Columns []string

	Summary QuerySummary
}

// QuerySummary carries execution metadata reported by the server.
type QuerySummary struct {
	ExecutionTime        time.Duration
	NodesCreated         int
	NodesDeleted         int
	RelationshipsCreated int
	RelationshipsDeleted int
	PropertiesSet        int
}

// GraphClientConfig configures a graph database client.
type GraphClientConfig struct {
	// URI is the server address. Supported schemes:
	//   - "bolt://host:port"      direct, unencrypted
	//   - "bolt+s://host:port"    direct, TLS with CA verification
	//   - "bolt+ssc://host:port"  direct, TLS accepting self-signed certificates
	//   - "neo4j://", "neo4j+s://", "neo4j+ssc://" for routing
	URI string

	Username string
	Password string

	// Database is the target database. Empty selects the server default.
	Database string

	// MaxConnectionPoolSize of zero or less uses the driver default.
	MaxConnectionPoolSize int

	// ConnectionTimeout bounds connection acquisition and caps the connect backoff.
	ConnectionTimeout time.Duration

	// MaxTransactionRetryTime bounds the driver's managed transaction retries.
	MaxTransactionRetryTime time.Duration

	// ConnectRetries is the number of connect attempts before giving up.
	ConnectRetries int
}

var supportedSchemes = map[string]bool{
	"bolt":      true,
	"bolt+s":    true,
	"bolt+ssc":  true,
	"neo4j":     true,
	"neo4j+s":   true,
	"neo4j+ssc": true,
}

// DefaultConfig returns a configuration for a local single-instance server.
func DefaultConfig() GraphClientConfig {
	return GraphClientConfig{
		URI:                     "neo4j://localhost:7687",
		Username:                "neo4j",
		Password:                "",
		Database:                "neo4j",
		MaxConnectionPoolSize:   50,
		ConnectionTimeout:       30 * time.Second,
		MaxTransactionRetryTime: 30 * time.Second,
		ConnectRetries:          5,
	}
}

// Validate checks that the configuration can be used to build a driver.
func (c GraphClientConfig) Validate() error {
	if c.URI == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "URI cannot be empty")
	}
	u, err := url.Parse(c.URI)
	if err != nil {
		return types.WrapError(ErrCodeGraphInvalidConfig, "URI is malformed", err)
	}
	if !supportedSchemes[u.Scheme] {
		return types.NewError(ErrCodeGraphInvalidConfig, "unsupported URI scheme: "+u.Scheme)
	}
	if u.Host == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "URI must include a host")
	}
	if c.Username == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "Username cannot be empty")
	}
	if c.ConnectionTimeout <= 0 {
		return types.NewError(ErrCodeGraphInvalidConfig, "ConnectionTimeout must be positive")
	}
	if c.MaxTransactionRetryTime <= 0 {
		return types.NewError(ErrCodeGraphInvalidConfig, "MaxTransactionRetryTime must be positive")
	}
	if c.ConnectRetries < 1 {
		return types.NewError(ErrCodeGraphInvalidConfig, "ConnectRetries must be at least 1")
	}
	return nil
}
