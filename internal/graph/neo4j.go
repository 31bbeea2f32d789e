package graph

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/neo4j-graph-examples/network-management/internal/types"
)

const (
	connectBaseDelay      = 100 * time.Millisecond
	healthCheckTimeout    = 5 * time.Second
	healthDegradedLatency = time.Second
)

// driverFactory builds a driver. Swapped in tests to exercise the connect loop.
type driverFactory func(uri string, token neo4j.AuthToken, configure func(*neo4j.Config)) (neo4j.DriverWithContext, error)

func newNeo4jDriver(uri string, token neo4j.AuthToken, configure func(*neo4j.Config)) (neo4j.DriverWithContext, error) {
	return neo4j.NewDriverWithContext(uri, token, configure)
}

// Neo4jClient implements GraphClient on top of the official Neo4j Go driver.
// Pooling, routing and managed transaction retries are handled by the driver.
// mu guards driver; statements run against the driver held when they start.
type Neo4jClient struct {
	config    GraphClientConfig
	mu        sync.RWMutex
	driver    neo4j.DriverWithContext
	newDriver driverFactory
	logger    *slog.Logger
}

// NewNeo4jClient validates config and returns an unconnected client.
func NewNeo4jClient(config GraphClientConfig) (*Neo4jClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Neo4jClient{
		config:    config,
		newDriver: newNeo4jDriver,
		logger:    slog.Default().With("component", "neo4j"),
	}, nil
}

// Connect creates the driver and verifies connectivity, retrying with exponential backoff.
// Reconnecting replaces and closes the previous driver.
func (c *Neo4jClient) Connect(ctx context.Context) error {
	auth := neo4j.BasicAuth(c.config.Username, c.config.Password, "")

	configure := func(config *neo4j.Config) {
		if c.config.MaxConnectionPoolSize > 0 {
			config.MaxConnectionPoolSize = c.config.MaxConnectionPoolSize
		}
		config.ConnectionAcquisitionTimeout = c.config.ConnectionTimeout
		config.MaxTransactionRetryTime = c.config.MaxTransactionRetryTime
		// Encryption is selected by the URI scheme (bolt:// vs bolt+s://)
	}

	var lastErr error
	for attempt := 0; attempt < c.config.ConnectRetries; attempt++ {
		driver, err := c.newDriver(c.config.URI, auth, configure)
		if err == nil {
			err = driver.VerifyConnectivity(ctx)
			if err == nil {
				c.swapDriver(ctx, driver)
				c.logger.Debug("connected", "uri", c.config.URI, "attempt", attempt+1)
				return nil
			}
			_ = driver.Close(ctx)
		}

		lastErr = err
		c.logger.Debug("connect attempt failed", "uri", c.config.URI, "attempt", attempt+1, "error", err)

		if ctx.Err() != nil {
			return types.WrapError(ErrCodeGraphConnectionFailed,
				"connection attempt cancelled", ctx.Err())
		}
		if attempt == c.config.ConnectRetries-1 {
			break
		}

		select {
		case <-time.After(backoffDelay(attempt, c.config.ConnectionTimeout)):
		case <-ctx.Done():
			return types.WrapError(ErrCodeGraphConnectionFailed,
				"connection attempt cancelled", ctx.Err())
		}
	}

	return types.WrapRetryableError(ErrCodeGraphConnectionFailed,
		fmt.Sprintf("failed to connect after %d attempts", c.config.ConnectRetries), lastErr)
}

func (c *Neo4jClient) swapDriver(ctx context.Context, driver neo4j.DriverWithContext) {
	c.mu.Lock()
	previous := c.driver
	c.driver = driver
	c.mu.Unlock()

	if previous != nil {
		if err := previous.Close(ctx); err != nil {
			c.logger.Warn("failed to close previous driver", "error", err)
		}
	}
}

func (c *Neo4jClient) currentDriver() neo4j.DriverWithContext {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.driver
}

// backoffDelay is connectBaseDelay * 2^attempt, capped at limit.
func backoffDelay(attempt int, limit time.Duration) time.Duration {
	delay := connectBaseDelay << uint(attempt)
	if delay <= 0 || delay > limit {
		return limit
	}
	return delay
}

// Close releases the driver and its pooled connections.
func (c *Neo4jClient) Close(ctx context.Context) error {
	c.mu.Lock()
	driver := c.driver
	c.driver = nil
	c.mu.Unlock()

	if driver == nil {
		return nil
	}
	if err := driver.Close(ctx); err != nil {
		return types.WrapError(ErrCodeGraphConnectionClosed, "failed to close driver", err)
	}
	return nil
}

// Health verifies connectivity and reports the server agent.
func (c *Neo4jClient) Health(ctx context.Context) types.HealthStatus {
	driver := c.currentDriver()
	if driver == nil {
		return types.Unhealthy("driver not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	start := time.Now()
	info, err := driver.GetServerInfo(healthCtx)
	latency := time.Since(start)
	if err != nil {
		return types.Unhealthy(fmt.Sprintf("connectivity check failed: %v", err)).WithLatency(latency)
	}

	message := fmt.Sprintf("connected to %s at %s", info.Agent(), info.Address())
	if latency > healthDegradedLatency {
		return types.Degraded(message).WithLatency(latency)
	}
	return types.Healthy(message).WithLatency(latency)
}

// Query runs cypher in a managed read transaction against the configured database.
// The session lives for exactly this unit of work.
func (c *Neo4jClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	if err := checkStatement(cypher); err != nil {
		return QueryResult{}, err
	}
	result, err := c.run(ctx, neo4j.AccessModeRead, cypher, params)
	if err != nil {
		return QueryResult{}, types.WrapError(ErrCodeGraphQueryFailed, "query execution failed", err)
	}
	return result, nil
}

// ExecuteWrite runs cypher in a managed write transaction against the configured database.
func (c *Neo4jClient) ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	if err := checkStatement(cypher); err != nil {
		return QueryResult{}, err
	}
	result, err := c.run(ctx, neo4j.AccessModeWrite, cypher, params)
	if err != nil {
		return QueryResult{}, types.WrapError(ErrCodeGraphWriteFailed, "write execution failed", err)
	}
	return result, nil
}

// checkStatement rejects blank statements before a session is opened.
func checkStatement(cypher string) error {
	if strings.TrimSpace(cypher) == "" {
		return types.NewError(ErrCodeGraphInvalidQuery, "cypher statement cannot be empty")
	}
	return nil
}

func (c *Neo4jClient) run(ctx context.Context, mode neo4j.AccessMode, cypher string, params map[string]any) (QueryResult, error) {
	driver := c.currentDriver()
	if driver == nil {
		return QueryResult{}, types.NewError(ErrCodeGraphConnectionClosed, "driver not connected")
	}

	startTime := time.Now()

	session := driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.config.Database,
		AccessMode:   mode,
	})
	defer session.Close(ctx)

	work := func(tx neo4j.ManagedTransaction) (any, error) {
		neoResult, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}

		records, err := neoResult.Collect(ctx)
		if err != nil {
			return nil, err
		}

		summary, err := neoResult.Consume(ctx)
		if err != nil {
			return nil, err
		}

		return convertNeo4jResult(records, summary), nil
	}

	var (
		out any
		err error
	)
	if mode == neo4j.AccessModeWrite {
		out, err = session.ExecuteWrite(ctx, work)
	} else {
		out, err = session.ExecuteRead(ctx, work)
	}
	if err != nil {
		return QueryResult{}, err
	}

	queryResult, ok := out.(QueryResult)
	if !ok {
		return QueryResult{}, types.NewError(ErrCodeGraphResultParsing,
			fmt.Sprintf("transaction returned %T, want QueryResult", out))
	}
	queryResult.Summary.ExecutionTime = time.Since(startTime)
	return queryResult, nil
}

// convertNeo4jResult flattens driver records into column-keyed maps.
func convertNeo4jResult(records []*neo4j.Record, summary neo4j.ResultSummary) QueryResult {
	result := QueryResult{
		Records: make([]map[string]any, 0, len(records)),
		Columns: []string{},
	}

	if len(records) > 0 {
		result.Columns = records[0].Keys
	}

	for _, record := range records {
		row := make(map[string]any, len(record.Keys))
		for i, key := range record.Keys {
			row[key] = record.Values[i]
		}
		result.Records = append(result.Records, row)
	}

	if summary != nil && summary.Counters() != nil {
		counters := summary.Counters()
		result.Summary = QuerySummary{
			NodesCreated:         counters.NodesCreated(),
			NodesDeleted:         counters.NodesDeleted(),
			RelationshipsCreated: counters.RelationshipsCreated(),
			RelationshipsDeleted: counters.RelationshipsDeleted(),
			PropertiesSet:        counters.PropertiesSet(),
		}
	}

	return result
}
