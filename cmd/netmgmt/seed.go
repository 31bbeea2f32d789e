package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neo4j-graph-examples/network-management/cmd/netmgmt/internal"
	"github.com/neo4j-graph-examples/network-management/internal/network"
	"github.com/neo4j-graph-examples/network-management/internal/util"
)

func newSeedCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a data center topology into the graph",
		Long: `Merge data centers, routers and interfaces into the graph.

Without --file a small built-in topology (Iceland and Ireland) is written.
Statements use MERGE, so seeding the same topology twice is harmless.`,
		Example: `  netmgmt seed
  netmgmt seed --file topology.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			topology := network.DefaultTopology()
			if file != "" {
				path, err := util.ExpandPath(file)
				if err != nil {
					return err
				}
				loaded, err := network.LoadTopology(path)
				if err != nil {
					return err
				}
				topology = loaded
			}
			return a.runSeed(cmd, topology)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML topology file")
	return cmd
}

func (a *app) runSeed(cmd *cobra.Command, topology network.Topology) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Query.Timeout)
	defer cancel()

	client, err := a.connect(ctx)
	if err != nil {
		return err
	}
	defer a.closeClient(client)

	result, err := network.NewRepository(client, network.WithLogger(a.logger)).Seed(ctx, topology)
	if err != nil {
		return err
	}

	out := a.formatter(cmd)
	if a.flags.GetOutputFormat() == internal.FormatJSON {
		return out.PrintJSON(result)
	}
	return out.PrintSuccess(fmt.Sprintf("Seeded %d data centers (%d nodes, %d relationships created)",
		result.DataCenters, result.NodesCreated, result.RelationshipsCreated))
}
