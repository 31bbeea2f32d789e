package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/neo4j-graph-examples/network-management/cmd/netmgmt/internal"
	"github.com/neo4j-graph-examples/network-management/internal/network"
)

// interfacesOutput is the JSON shape of the interfaces command.
type interfacesOutput struct {
	Location string   `json:"location"`
	IPs      []string `json:"ips"`
}

func newInterfacesCmd(a *app) *cobra.Command {
	var location string

	cmd := &cobra.Command{
		Use:     "interfaces",
		Aliases: []string{"ips"},
		Short:   "List the interface IPs routed inside a data center",
		Long: `List the IP address of every interface reachable through
DataCenter-[:CONTAINS]->Router-[:ROUTES]->Interface for one location.

The query runs in a read transaction and prints one IP per line, in the
order the server returned them.`,
		Example: `  netmgmt interfaces
  netmgmt interfaces --location Ireland
  netmgmt ips -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if location == "" {
				location = a.cfg.Query.Location
			}
			return a.runInterfaces(cmd, location)
		},
	}

	cmd.Flags().StringVarP(&location, "location", "l", "", "Data center location (default from config, \""+network.DefaultLocation+"\")")
	return cmd
}

func (a *app) runInterfaces(cmd *cobra.Command, location string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Query.Timeout)
	defer cancel()

	client, err := a.connect(ctx)
	if err != nil {
		return err
	}
	defer a.closeClient(client)

	repo := network.NewRepository(client, network.WithLogger(a.logger))
	ips, err := repo.InterfaceIPs(ctx, location)
	if err != nil {
		return err
	}

	out := a.formatter(cmd)
	if a.flags.GetOutputFormat() == internal.FormatJSON {
		return out.PrintJSON(interfacesOutput{Location: location, IPs: ips})
	}
	return out.PrintLines(ips)
}
