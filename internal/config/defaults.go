package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/neo4j-graph-examples/network-management/internal/network"
)

// DefaultConfig returns a Config for a local Neo4j server and the Iceland data center.
func DefaultConfig() *Config {
	return &Config{
		Neo4j: Neo4jConfig{
			URI:                     "neo4j://localhost:7687",
			Username:                "neo4j",
			Password:                "",
			Database:                "neo4j",
			MaxConnections:          50,
			ConnectionTimeout:       30 * time.Second,
			MaxTransactionRetryTime: 30 * time.Second,
			ConnectRetries:          5,
		},
		Query: QueryConfig{
			Location: network.DefaultLocation,
			Timeout:  time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Tracing: TracingConfig{
			Enabled:    false,
			Endpoint:   "",
			Insecure:   false,
			SampleRate: 1.0,
		},
		Metrics: MetricsConfig{
			Enabled:        false,
			Endpoint:       "",
			Insecure:       false,
			ExportInterval: 30 * time.Second,
		},
	}
}

// setDefaults registers every default with v so environment overrides apply to all keys.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("neo4j.uri", d.Neo4j.URI)
	v.SetDefault("neo4j.username", d.Neo4j.Username)
	v.SetDefault("neo4j.password", d.Neo4j.Password)
	v.SetDefault("neo4j.database", d.Neo4j.Database)
	v.SetDefault("neo4j.max_connections", d.Neo4j.MaxConnections)
	v.SetDefault("neo4j.connection_timeout", d.Neo4j.ConnectionTimeout)
	v.SetDefault("neo4j.max_transaction_retry_time", d.Neo4j.MaxTransactionRetryTime)
	v.SetDefault("neo4j.connect_retries", d.Neo4j.ConnectRetries)

	v.SetDefault("query.location", d.Query.Location)
	v.SetDefault("query.timeout", d.Query.Timeout)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)

	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.endpoint", d.Tracing.Endpoint)
	v.SetDefault("tracing.insecure", d.Tracing.Insecure)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.endpoint", d.Metrics.Endpoint)
	v.SetDefault("metrics.insecure", d.Metrics.Insecure)
	v.SetDefault("metrics.export_interval", d.Metrics.ExportInterval)
}
