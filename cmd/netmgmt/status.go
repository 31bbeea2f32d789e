package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/neo4j-graph-examples/network-management/cmd/netmgmt/internal"
	"github.com/neo4j-graph-examples/network-management/internal/network"
	"github.com/neo4j-graph-examples/network-management/internal/types"
)

type statusOutput struct {
	URI      string             `json:"uri"`
	Database string             `json:"database"`
	Health   types.HealthStatus `json:"health"`
	Counts   *network.Counts    `json:"counts,omitempty"`
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the database connection and report node counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStatus(cmd)
		},
	}
}

func (a *app) runStatus(cmd *cobra.Command) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Query.Timeout)
	defer cancel()

	out := a.formatter(cmd)
	status := statusOutput{
		URI:      a.cfg.Neo4j.URI,
		Database: a.cfg.Neo4j.Database,
	}

	client, err := a.connect(ctx)
	if err != nil {
		status.Health = types.Unhealthy(err.Error())
		if printErr := a.printStatus(out, status); printErr != nil {
			return printErr
		}
		return err
	}
	defer a.closeClient(client)

	status.Health = client.Health(ctx)
	if status.Health.IsUnhealthy() {
		if err := a.printStatus(out, status); err != nil {
			return err
		}
		return internal.NewCLIError(internal.ExitDatabaseError, "graph database is unhealthy: "+status.Health.Message)
	}

	counts, err := network.NewRepository(client, network.WithLogger(a.logger)).Counts(ctx)
	if err != nil {
		return err
	}
	status.Counts = &counts

	return a.printStatus(out, status)
}

func (a *app) printStatus(out internal.Formatter, status statusOutput) error {
	if a.flags.GetOutputFormat() == internal.FormatJSON {
		return out.PrintJSON(status)
	}

	message := status.URI + " (" + status.Database + "): " + status.Health.State.String()
	if status.Health.Latency > 0 {
		message += ", latency " + status.Health.Latency.String()
	}
	if status.Health.IsUnhealthy() {
		if err := out.PrintError(message); err != nil {
			return err
		}
		return out.PrintLines([]string{"  " + status.Health.Message})
	}
	if err := out.PrintSuccess(message); err != nil {
		return err
	}

	if status.Counts == nil {
		return nil
	}
	return out.PrintTable([]string{"label", "count"}, [][]string{
		{network.LabelDataCenter, strconv.FormatInt(status.Counts.DataCenters, 10)},
		{network.LabelRouter, strconv.FormatInt(status.Counts.Routers, 10)},
		{network.LabelInterface, strconv.FormatInt(status.Counts.Interfaces, 10)},
	})
}
