package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/neo4j-graph-examples/network-management/cmd/netmgmt/internal"
	"github.com/neo4j-graph-examples/network-management/internal/config"
	"github.com/neo4j-graph-examples/network-management/internal/contextkeys"
	"github.com/neo4j-graph-examples/network-management/internal/graph"
	"github.com/neo4j-graph-examples/network-management/internal/observability"
	"github.com/neo4j-graph-examples/network-management/internal/types"
	"github.com/neo4j-graph-examples/network-management/internal/util"
)

const (
	homeEnvVar      = "NETMGMT_HOME"
	shutdownTimeout = 5 * time.Second
)

// clientFactory builds an unconnected graph client. Tests replace it with a mock.
type clientFactory func(cfg graph.GraphClientConfig) (graph.GraphClient, error)

func newNeo4jClient(cfg graph.GraphClientConfig) (graph.GraphClient, error) {
	return graph.NewNeo4jClient(cfg)
}

// app carries the state shared by every command of one invocation.
type app struct {
	flags     GlobalFlags
	cfg       *config.Config
	logger    *slog.Logger
	tracer    *sdktrace.TracerProvider
	meter     metric.MeterProvider
	newClient clientFactory
}

func newApp() *app {
	return &app{
		logger:    slog.Default(),
		newClient: newNeo4jClient,
	}
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a := newApp()
	rootCmd := newRootCmd(a)
	err := rootCmd.ExecuteContext(ctx)
	a.shutdown()
	return internal.HandleError(rootCmd, err)
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "netmgmt",
		Short: "Query a Neo4j network-management graph",
		Long: `netmgmt queries a Neo4j graph of data centers, routers and interfaces.

The default command set lists the IP address of every interface routed inside
a data center:

  netmgmt interfaces --location Iceland

Results are written to standard output, one per line. Logs go to standard error.`,
		PersistentPreRunE: a.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	RegisterGlobalFlags(rootCmd, &a.flags)

	rootCmd.AddCommand(newInterfacesCmd(a))
	rootCmd.AddCommand(newStatusCmd(a))
	rootCmd.AddCommand(newSeedCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd(a))
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// setup runs before every command: it loads configuration, applies flag
// overrides, then installs logging and telemetry.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := a.flags.Validate(); err != nil {
		return err
	}

	// These work without a config file or a database.
	if skipsSetup(cmd) {
		return nil
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := observability.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	switch {
	case a.flags.IsVerbose():
		level = slog.LevelDebug
	case a.flags.IsQuiet():
		level = slog.LevelError
	}
	a.logger = observability.NewLogger(cmd.ErrOrStderr(), level, cfg.Logging.Format)
	slog.SetDefault(a.logger)

	runID := uuid.NewString()
	cmd.SetContext(contextkeys.WithRunID(cmd.Context(), runID))
	a.logger.DebugContext(cmd.Context(), "configuration loaded", "command", cmd.CommandPath())

	tp, err := observability.InitTracing(cmd.Context(), cfg.Tracing)
	if err != nil {
		return err
	}
	a.tracer = tp

	mp, err := observability.InitMetrics(cmd.Context(), cfg.Metrics)
	if err != nil {
		return err
	}
	a.meter = mp

	return nil
}

func skipsSetup(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "version", "completion", "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

// loadConfig resolves the config file, loads it and layers connection flags on top.
// An explicit --config must exist; the default location may be absent.
func (a *app) loadConfig() (*config.Config, error) {
	homeDir := a.flags.HomeDir
	if homeDir == "" {
		homeDir = os.Getenv(homeEnvVar)
	}
	homeDir, err := util.ExpandPath(homeDir)
	if err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "invalid home directory", err)
	}
	if homeDir == "" {
		homeDir = config.DefaultHomeDir()
	}

	configFile, err := util.ExpandPath(a.flags.ConfigFile)
	if err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "invalid config path", err)
	}

	validator := config.NewValidator()
	loader := config.NewConfigLoader(validator)

	var cfg *config.Config
	if configFile != "" {
		cfg, err = loader.Load(configFile)
	} else {
		cfg, err = loader.LoadWithDefaults(config.DefaultConfigPath(homeDir))
	}
	if err != nil {
		return nil, err
	}

	if !a.applyOverrides(cfg) {
		return cfg, nil
	}
	if err := validator.Validate(cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_VALIDATION_FAILED, "invalid connection flags", err)
	}
	return cfg, nil
}

// applyOverrides copies non-empty connection flags into cfg and reports whether any applied.
func (a *app) applyOverrides(cfg *config.Config) bool {
	applied := false
	set := func(dst *string, value string) {
		if value != "" {
			*dst = value
			applied = true
		}
	}
	set(&cfg.Neo4j.URI, a.flags.URI)
	set(&cfg.Neo4j.Username, a.flags.Username)
	set(&cfg.Neo4j.Password, a.flags.Password)
	set(&cfg.Neo4j.Database, a.flags.Database)
	return applied
}

// connect builds, traces and connects a graph client. Callers must Close it.
func (a *app) connect(ctx context.Context) (graph.GraphClient, error) {
	clientCfg := a.cfg.GraphClientConfig()

	client, err := a.newClient(clientCfg)
	if err != nil {
		return nil, err
	}
	traced := graph.NewTracedGraphClient(client, observability.Tracer(), clientCfg.Database,
		graph.WithMeter(observability.Meter()))

	a.logger.Debug("connecting to graph database",
		"uri", clientCfg.URI,
		"database", clientCfg.Database,
	)
	if err := traced.Connect(ctx); err != nil {
		return nil, err
	}
	return traced, nil
}

// closeClient closes client with a context that survives cancellation of the command.
func (a *app) closeClient(client graph.GraphClient) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := client.Close(ctx); err != nil {
		a.logger.Warn("failed to close graph client", "error", err)
	}
}

// shutdown flushes telemetry buffered during the command.
func (a *app) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.meter != nil {
		if err := observability.ShutdownMetrics(ctx, a.meter); err != nil {
			a.logger.Warn("failed to flush metrics", "error", err)
		}
	}
	if a.tracer != nil {
		if err := observability.ShutdownTracing(ctx, a.tracer); err != nil {
			a.logger.Warn("failed to flush traces", "error", err)
		}
	}
}

func (a *app) formatter(cmd *cobra.Command) internal.Formatter {
	return internal.NewFormatter(a.flags.GetOutputFormat(), cmd.OutOrStdout())
}
