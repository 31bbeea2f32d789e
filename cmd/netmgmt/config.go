package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/neo4j-graph-examples/network-management/cmd/netmgmt/internal"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect netmgmt configuration",
		Long: `Configuration is read from ~/.netmgmt/config.yaml by default. Every key can be
overridden with a NETMGMT_ environment variable, e.g. NETMGMT_NEO4J_URI, and
string values may reference other variables as ${NAME}.`,
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration with secrets redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			redacted := a.cfg.Redacted()
			if a.flags.GetOutputFormat() == internal.FormatJSON {
				return a.formatter(cmd).PrintJSON(redacted)
			}

			encoder := yaml.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent(2)
			if err := encoder.Encode(redacted); err != nil {
				return err
			}
			return encoder.Close()
		},
	})

	return configCmd
}
