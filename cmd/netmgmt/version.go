package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neo4j-graph-examples/network-management/cmd/netmgmt/internal"
	"github.com/neo4j-graph-examples/network-management/pkg/version"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.flags.GetOutputFormat() == internal.FormatJSON {
				return a.formatter(cmd).PrintJSON(version.Get())
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}
