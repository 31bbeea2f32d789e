package main

import (
	"github.com/spf13/cobra"

	"github.com/neo4j-graph-examples/network-management/cmd/netmgmt/internal"
)

// GlobalFlags holds global flags available to all commands
type GlobalFlags struct {
	Verbose      bool
	Quiet        bool
	OutputFormat string
	ConfigFile   string
	HomeDir      string

	// Connection overrides, applied on top of the config file when set.
	URI      string
	Username string
	Password string
	Database string
}

// RegisterGlobalFlags registers persistent flags on the root command
func RegisterGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable verbose output (debug logging)")
	pf.BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress non-essential output")
	pf.StringVarP(&flags.OutputFormat, "output", "o", "text", "Output format (text|json)")
	pf.StringVar(&flags.ConfigFile, "config", "", "Path to config file (default: $NETMGMT_HOME/config.yaml)")
	pf.StringVar(&flags.HomeDir, "home", "", "netmgmt home directory (default: ~/.netmgmt)")

	pf.StringVar(&flags.URI, "uri", "", "Neo4j URI, e.g. neo4j://localhost:7687")
	pf.StringVar(&flags.Username, "username", "", "Neo4j username")
	pf.StringVar(&flags.Password, "password", "", "Neo4j password")
	pf.StringVar(&flags.Database, "database", "", "Neo4j database name")
}

// Validate checks flag combinations that cobra cannot express.
func (f *GlobalFlags) Validate() error {
	if f.OutputFormat != string(internal.FormatText) && f.OutputFormat != string(internal.FormatJSON) {
		return internal.NewCLIError(internal.ExitConfigError, "--output must be one of: text, json")
	}
	if f.Verbose && f.Quiet {
		return internal.NewCLIError(internal.ExitConfigError, "--verbose and --quiet cannot be used together")
	}
	return nil
}

// GetOutputFormat returns the parsed output format
func (f *GlobalFlags) GetOutputFormat() internal.OutputFormat {
	if f.OutputFormat == string(internal.FormatJSON) {
		return internal.FormatJSON
	}
	return internal.FormatText
}

// IsVerbose returns true if verbose mode is enabled
func (f *GlobalFlags) IsVerbose() bool {
	return f.Verbose && !f.Quiet
}

// IsQuiet returns true if quiet mode is enabled
func (f *GlobalFlags) IsQuiet() bool {
	return f.Quiet
}
