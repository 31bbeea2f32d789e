package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	"github.com/neo4j-graph-examples/network-management/internal/types"
)

// EnvPrefix prefixes environment overrides, e.g. NETMGMT_NEO4J_URI.
const EnvPrefix = "NETMGMT"

// ConfigLoader handles loading configuration from files.
type ConfigLoader interface {
	Load(path string) (*Config, error)
	LoadWithDefaults(path string) (*Config, error)
}

// viperConfigLoader implements ConfigLoader using Viper.
type viperConfigLoader struct {
	validator ConfigValidator
}

// NewConfigLoader creates a new ConfigLoader instance.
func NewConfigLoader(validator ConfigValidator) ConfigLoader {
	return &viperConfigLoader{
		validator: validator,
	}
}

// Load reads the YAML file at path on top of the defaults, applies NETMGMT_* environment
// overrides and ${VAR} interpolation, then validates. A missing file is an error.
func (l *viperConfigLoader) Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, types.WrapError(types.CONFIG_NOT_FOUND,
				fmt.Sprintf("config file not found: %s", path), err)
		}
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "failed to stat config file", err)
	}
	return l.load(path)
}

// LoadWithDefaults behaves like Load but falls back to defaults (plus environment
// overrides) when the file does not exist.
func (l *viperConfigLoader) LoadWithDefaults(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return l.load("")
	}
	return l.load(path)
}

func (l *viperConfigLoader) load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to read config file", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to unmarshal config", err)
	}

	applyInterpolation(&cfg)

	if err := l.validator.Validate(&cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_VALIDATION_FAILED, "configuration validation failed", err)
	}

	return &cfg, nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// interpolateString replaces ${VAR_NAME} with the environment value.
// Unset variables are left as-is so the operator can see what was missing.
func interpolateString(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if envValue := os.Getenv(varName); envValue != "" {
			return envValue
		}
		return match
	})
}

// applyInterpolation interpolates every string field of cfg.
func applyInterpolation(cfg *Config) {
	cfg.Neo4j.URI = interpolateString(cfg.Neo4j.URI)
	cfg.Neo4j.Username = interpolateString(cfg.Neo4j.Username)
	cfg.Neo4j.Password = interpolateString(cfg.Neo4j.Password)
	cfg.Neo4j.Database = interpolateString(cfg.Neo4j.Database)

	cfg.Query.Location = interpolateString(cfg.Query.Location)

	cfg.Logging.Level = interpolateString(cfg.Logging.Level)
	cfg.Logging.Format = interpolateString(cfg.Logging.Format)

	cfg.Tracing.Endpoint = interpolateString(cfg.Tracing.Endpoint)
	cfg.Metrics.Endpoint = interpolateString(cfg.Metrics.Endpoint)
}
