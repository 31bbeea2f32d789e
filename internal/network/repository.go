package network

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/neo4j-graph-examples/network-management/internal/graph"
	"github.com/neo4j-graph-examples/network-management/internal/types"
)

// Repository answers network-management questions against a graph database.
type Repository struct {
	client graph.GraphClient
	logger *slog.Logger
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithLogger sets the logger used for query diagnostics.
func WithLogger(logger *slog.Logger) RepositoryOption {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRepository returns a Repository backed by an already connected client.
func NewRepository(client graph.GraphClient, opts ...RepositoryOption) *Repository {
	r := &Repository{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// InterfaceIPs returns the IP of every interface routed inside the data center at location,
// in the order the server returned the rows. No matching rows yields an empty slice.
func (r *Repository) InterfaceIPs(ctx context.Context, location string) ([]string, error) {
	if strings.TrimSpace(location) == "" {
		return nil, types.NewError(ErrCodeInvalidLocation, "location cannot be empty")
	}

	logger := r.logger.With("query_id", uuid.NewString(), "location", location)
	params := map[string]any{LocationParam: location}

	start := time.Now()
	result, err := r.client.Query(ctx, InterfacesByLocationQuery, params)
	if err != nil {
		logger.DebugContext(ctx, "interface lookup failed", "error", err)
		return nil, types.WrapError(ErrCodeLookupFailed,
			fmt.Sprintf("failed to list interfaces for %q", location), err)
	}

	ips, err := decodeIPs(result.Records)
	if err != nil {
		return nil, err
	}

	logger.DebugContext(ctx, "interface lookup completed",
		"rows", len(ips),
		"duration", time.Since(start),
		"server_time", result.Summary.ExecutionTime)
	return ips, nil
}

func decodeIPs(records []map[string]any) ([]string, error) {
	ips := make([]string, 0, len(records))
	for i, record := range records {
		value, ok := record[IPField]
		if !ok {
			return nil, types.NewError(ErrCodeResultDecodeFailed,
				fmt.Sprintf("row %d has no %q field", i, IPField))
		}
		ip, ok := value.(string)
		if !ok {
			return nil, types.NewError(ErrCodeResultDecodeFailed,
				fmt.Sprintf("row %d: %q is %T, want string", i, IPField, value))
		}
		ips = append(ips, ip)
	}
	return ips, nil
}

// SeedResult sums the write counters of a Seed call.
type SeedResult struct {
	DataCenters          int `json:"data_centers"`
	NodesCreated         int `json:"nodes_created"`
	RelationshipsCreated int `json:"relationships_created"`
	PropertiesSet        int `json:"properties_set"`
}

// Seed merges topology into the graph, one write transaction per data center.
// Seeding the same topology twice creates nothing the second time.
func (r *Repository) Seed(ctx context.Context, topology Topology) (SeedResult, error) {
	if err := topology.Validate(); err != nil {
		return SeedResult{}, err
	}

	var total SeedResult
	for _, dc := range topology.DataCenters {
		result, err := r.client.ExecuteWrite(ctx, seedDataCenterQuery, dc.params())
		if err != nil {
			return total, types.WrapError(ErrCodeSeedFailed,
				fmt.Sprintf("failed to seed data center %q", dc.Location), err)
		}

		total.DataCenters++
		total.NodesCreated += result.Summary.NodesCreated
		total.RelationshipsCreated += result.Summary.RelationshipsCreated
		total.PropertiesSet += result.Summary.PropertiesSet

		r.logger.InfoContext(ctx, "seeded data center",
			"location", dc.Location,
			"routers", len(dc.Routers),
			"nodes_created", result.Summary.NodesCreated)
	}
	return total, nil
}

// Counts is the number of nodes per label.
type Counts struct {
	DataCenters int64 `json:"data_centers" yaml:"data_centers"`
	Routers     int64 `json:"routers" yaml:"routers"`
	Interfaces  int64 `json:"interfaces" yaml:"interfaces"`
}

// Counts reports how many data centers, routers and interfaces the graph holds.
func (r *Repository) Counts(ctx context.Context) (Counts, error) {
	result, err := r.client.Query(ctx, countsQuery, nil)
	if err != nil {
		return Counts{}, types.WrapError(ErrCodeCountFailed, "failed to count nodes", err)
	}
	if len(result.Records) != 1 {
		return Counts{}, types.NewError(ErrCodeResultDecodeFailed,
			fmt.Sprintf("count query returned %d rows, want 1", len(result.Records)))
	}

	row := result.Records[0]
	var counts Counts
	for key, dst := range map[string]*int64{
		"dataCenters": &counts.DataCenters,
		"routers":     &counts.Routers,
		"interfaces":  &counts.Interfaces,
	} {
		n, ok := row[key].(int64)
		if !ok {
			return Counts{}, types.NewError(ErrCodeResultDecodeFailed,
				fmt.Sprintf("%q is %T, want int64", key, row[key]))
		}
		*dst = n
	}
	return counts, nil
}
