package config

import (
	"time"

	"github.com/neo4j-graph-examples/network-management/internal/graph"
)

// Config is the root configuration of the netmgmt tool.
type Config struct {
	Neo4j   Neo4jConfig   `mapstructure:"neo4j" yaml:"neo4j" json:"neo4j" validate:"required"`
	Query   QueryConfig   `mapstructure:"query" yaml:"query" json:"query" validate:"required"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" json:"logging"`
	Tracing TracingConfig `mapstructure:"tracing" yaml:"tracing" json:"tracing"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics" json:"metrics"`
}

// Neo4jConfig contains Neo4j connection settings.
type Neo4jConfig struct {
	URI                     string        `mapstructure:"uri" yaml:"uri" json:"uri" validate:"required"`
	Username                string        `mapstructure:"username" yaml:"username" json:"username" validate:"required"`
	Password                string        `mapstructure:"password" yaml:"password" json:"password"`
	Database                string        `mapstructure:"database" yaml:"database" json:"database"`
	MaxConnections          int           `mapstructure:"max_connections" yaml:"max_connections" json:"max_connections" validate:"min=1,max=1000"`
	ConnectionTimeout       time.Duration `mapstructure:"connection_timeout" yaml:"connection_timeout" json:"connection_timeout" validate:"min=1s"`
	MaxTransactionRetryTime time.Duration `mapstructure:"max_transaction_retry_time" yaml:"max_transaction_retry_time" json:"max_transaction_retry_time" validate:"min=1s"`
	ConnectRetries          int           `mapstructure:"connect_retries" yaml:"connect_retries" json:"connect_retries" validate:"min=1,max=20"`
}

// QueryConfig contains defaults for the interface lookup.
type QueryConfig struct {
	Location string        `mapstructure:"location" yaml:"location" json:"location" validate:"required"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout" validate:"min=1s"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" json:"format" validate:"oneof=json text"`
}

// TracingConfig contains OpenTelemetry tracing configuration.
type TracingConfig struct {
	Enabled    bool    `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Endpoint   string  `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint" validate:"required_if=Enabled true"`
	Insecure   bool    `mapstructure:"insecure" yaml:"insecure" json:"insecure"`
	SampleRate float64 `mapstructure:"sample_rate" yaml:"sample_rate" json:"sample_rate" validate:"min=0,max=1"`
}

// MetricsConfig contains OpenTelemetry metrics export configuration.
// Metrics are pushed over OTLP/gRPC and flushed when the command exits.
type MetricsConfig struct {
	Enabled        bool          `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Endpoint       string        `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint" validate:"required_if=Enabled true"`
	Insecure       bool          `mapstructure:"insecure" yaml:"insecure" json:"insecure"`
	ExportInterval time.Duration `mapstructure:"export_interval" yaml:"export_interval" json:"export_interval" validate:"min=1s"`
}

// GraphClientConfig maps the Neo4j section onto the graph client configuration.
func (c *Config) GraphClientConfig() graph.GraphClientConfig {
	return graph.GraphClientConfig{
		URI:                     c.Neo4j.URI,
		Username:                c.Neo4j.Username,
		Password:                c.Neo4j.Password,
		Database:                c.Neo4j.Database,
		MaxConnectionPoolSize:   c.Neo4j.MaxConnections,
		ConnectionTimeout:       c.Neo4j.ConnectionTimeout,
		MaxTransactionRetryTime: c.Neo4j.MaxTransactionRetryTime,
		ConnectRetries:          c.Neo4j.ConnectRetries,
	}
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	if c.Neo4j.Password != "" {
		c.Neo4j.Password = "[REDACTED]"
	}
	return c
}
