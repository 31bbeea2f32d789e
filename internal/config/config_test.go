package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neo4j-graph-examples/network-management/internal/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "neo4j://localhost:7687", cfg.Neo4j.URI)
	assert.Equal(t, "neo4j", cfg.Neo4j.Username)
	assert.Equal(t, "neo4j", cfg.Neo4j.Database)
	assert.Equal(t, 50, cfg.Neo4j.MaxConnections)
	assert.Equal(t, 30*time.Second, cfg.Neo4j.ConnectionTimeout)
	assert.Equal(t, 5, cfg.Neo4j.ConnectRetries)
	assert.Equal(t, "Iceland", cfg.Query.Location)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.False(t, cfg.Tracing.Enabled)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Metrics.ExportInterval)

	require.NoError(t, NewValidator().Validate(cfg))
}

func TestLoadValidConfig(t *testing.T) {
	t.Setenv("NETMGMT_TEST_COLLECTOR", "collector:4317")
	path := writeConfig(t, `
neo4j:
  uri: neo4j+s://abc.databases.neo4j.io
  username: reader
  password: s3cret
  database: network
  max_connections: 5
  connection_timeout: 10s
  max_transaction_retry_time: 15s
  connect_retries: 2

query:
  location: Ireland
  timeout: 2m

logging:
  level: debug
  format: json

tracing:
  enabled: true
  endpoint: localhost:4317
  insecure: true
  sample_rate: 0.5

metrics:
  enabled: true
  endpoint: ${NETMGMT_TEST_COLLECTOR}
  export_interval: 5s
`)

	cfg, err := NewConfigLoader(NewValidator()).Load(path)
	require.NoError(t, err)

	assert.Equal(t, "neo4j+s://abc.databases.neo4j.io", cfg.Neo4j.URI)
	assert.Equal(t, "reader", cfg.Neo4j.Username)
	assert.Equal(t, "s3cret", cfg.Neo4j.Password)
	assert.Equal(t, "network", cfg.Neo4j.Database)
	assert.Equal(t, 5, cfg.Neo4j.MaxConnections)
	assert.Equal(t, 10*time.Second, cfg.Neo4j.ConnectionTimeout)
	assert.Equal(t, 15*time.Second, cfg.Neo4j.MaxTransactionRetryTime)
	assert.Equal(t, 2, cfg.Neo4j.ConnectRetries)
	assert.Equal(t, "Ireland", cfg.Query.Location)
	assert.Equal(t, 2*time.Minute, cfg.Query.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "localhost:4317", cfg.Tracing.Endpoint)
	assert.True(t, cfg.Tracing.Insecure)
	assert.InDelta(t, 0.5, cfg.Tracing.SampleRate, 1e-9)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "collector:4317", cfg.Metrics.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.Metrics.ExportInterval)
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
neo4j:
  uri: bolt://graph:7687
`)

	cfg, err := NewConfigLoader(NewValidator()).Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bolt://graph:7687", cfg.Neo4j.URI)
	assert.Equal(t, "neo4j", cfg.Neo4j.Username)
	assert.Equal(t, "neo4j", cfg.Neo4j.Database)
	assert.Equal(t, "Iceland", cfg.Query.Location)
	assert.Equal(t, 30*time.Second, cfg.Neo4j.ConnectionTimeout)
}

func TestLoadEnvironmentInterpolation(t *testing.T) {
	t.Setenv("NETMGMT_TEST_PASSWORD", "from-env")
	path := writeConfig(t, `
neo4j:
  uri: neo4j://localhost:7687
  password: ${NETMGMT_TEST_PASSWORD}
  database: ${NETMGMT_TEST_UNSET_VAR}
`)

	cfg, err := NewConfigLoader(NewValidator()).Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Neo4j.Password)
	assert.Equal(t, "${NETMGMT_TEST_UNSET_VAR}", cfg.Neo4j.Database)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("NETMGMT_NEO4J_URI", "bolt://override:7687")
	t.Setenv("NETMGMT_QUERY_LOCATION", "Singapore")
	path := writeConfig(t, `
neo4j:
  uri: neo4j://from-file:7687
`)

	cfg, err := NewConfigLoader(NewValidator()).Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bolt://override:7687", cfg.Neo4j.URI)
	assert.Equal(t, "Singapore", cfg.Query.Location)
}

func TestLoadMissingFile(t *testing.T) {
	loader := NewConfigLoader(NewValidator())
	path := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := loader.Load(path)
	assert.Equal(t, types.CONFIG_NOT_FOUND, types.CodeOf(err))

	cfg, err := loader.LoadWithDefaults(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "neo4j: [unterminated")

	_, err := NewConfigLoader(NewValidator()).Load(path)
	assert.Equal(t, types.CONFIG_PARSE_FAILED, types.CodeOf(err))
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		contains string
	}{
		{"bad log level", "logging:\n  level: verbose\n", "logging.level must be one of"},
		{"bad log format", "logging:\n  format: xml\n", "logging.format must be one of"},
		{"empty uri", "neo4j:\n  uri: \"\"\n", "neo4j.uri is required"},
		{"tiny timeout", "neo4j:\n  connection_timeout: 10ms\n", "neo4j.connection_timeout must be at least 1s"},
		{"zero retries", "neo4j:\n  connect_retries: 0\n", "neo4j.connect_retries must be at least 1"},
		{"tracing without endpoint", "tracing:\n  enabled: true\n", "tracing.endpoint is required"},
		{"sample rate too high", "tracing:\n  sample_rate: 2\n", "tracing.sample_rate must be at most 1"},
		{"metrics without endpoint", "metrics:\n  enabled: true\n", "metrics.endpoint is required"},
		{"metrics interval too short", "metrics:\n  export_interval: 100ms\n", "metrics.export_interval must be at least 1s"},
		{"empty location", "query:\n  location: \"\"\n", "query.location is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)

			_, err := NewConfigLoader(NewValidator()).Load(path)

			require.Error(t, err)
			assert.Equal(t, types.CONFIG_VALIDATION_FAILED, types.CodeOf(err))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestGraphClientConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Neo4j.Password = "pw"

	gc := cfg.GraphClientConfig()

	assert.Equal(t, cfg.Neo4j.URI, gc.URI)
	assert.Equal(t, "pw", gc.Password)
	assert.Equal(t, "neo4j", gc.Database)
	assert.Equal(t, cfg.Neo4j.MaxConnections, gc.MaxConnectionPoolSize)
	assert.Equal(t, cfg.Neo4j.ConnectRetries, gc.ConnectRetries)
	require.NoError(t, gc.Validate())
}

func TestRedacted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Neo4j.Password = "hunter2"

	redacted := cfg.Redacted()

	assert.Equal(t, "[REDACTED]", redacted.Neo4j.Password)
	assert.Equal(t, "hunter2", cfg.Neo4j.Password)
	assert.Empty(t, DefaultConfig().Redacted().Neo4j.Password)
}

func TestCamelToSnake(t *testing.T) {
	tests := map[string]string{
		"URI":                     "uri",
		"Neo4j":                   "neo4j",
		"MaxTransactionRetryTime": "max_transaction_retry_time",
		"SampleRate":              "sample_rate",
	}
	for in, want := range tests {
		assert.Equal(t, want, camelToSnake(in), in)
	}
}
