package network

import (
	"bytes"
	"fmt"
	"net/netip"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/neo4j-graph-examples/network-management/internal/types"
)

// Topology is a set of data centers to seed into the graph.
type Topology struct {
	DataCenters []DataCenter `yaml:"data_centers" json:"data_centers"`
}

// DataCenter is identified by its location.
type DataCenter struct {
	Name     string   `yaml:"name" json:"name"`
	Location string   `yaml:"location" json:"location"`
	Routers  []Router `yaml:"routers" json:"routers"`
}

// Router names are unique within their data center.
type Router struct {
	Name       string      `yaml:"name" json:"name"`
	Interfaces []Interface `yaml:"interfaces" json:"interfaces"`
}

// Interface is identified by its IP within a router.
type Interface struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	IP   string `yaml:"ip" json:"ip"`
}

// LoadTopology reads and validates a YAML topology file.
func LoadTopology(path string) (Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Topology{}, types.WrapError(ErrCodeTopologyLoadFailed,
			fmt.Sprintf("failed to read topology file %s", path), err)
	}
	return ParseTopology(data)
}

// ParseTopology decodes YAML into a validated Topology. Unknown keys are rejected.
func ParseTopology(data []byte) (Topology, error) {
	var topology Topology
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&topology); err != nil {
		return Topology{}, types.WrapError(ErrCodeTopologyLoadFailed, "failed to parse topology", err)
	}
	if err := topology.Validate(); err != nil {
		return Topology{}, err
	}
	return topology, nil
}

// Validate checks locations, router name uniqueness and interface addresses.
func (t Topology) Validate() error {
	if len(t.DataCenters) == 0 {
		return types.NewError(ErrCodeTopologyInvalid, "topology has no data centers")
	}

	locations := make(map[string]bool, len(t.DataCenters))
	for i, dc := range t.DataCenters {
		if strings.TrimSpace(dc.Location) == "" {
			return types.NewError(ErrCodeTopologyInvalid,
				fmt.Sprintf("data_centers[%d]: location is required", i))
		}
		if locations[dc.Location] {
			return types.NewError(ErrCodeTopologyInvalid,
				fmt.Sprintf("data_centers[%d]: duplicate location %q", i, dc.Location))
		}
		locations[dc.Location] = true

		routers := make(map[string]bool, len(dc.Routers))
		for j, router := range dc.Routers {
			if router.Name == "" {
				return types.NewError(ErrCodeTopologyInvalid,
					fmt.Sprintf("%s: routers[%d]: name is required", dc.Location, j))
			}
			if routers[router.Name] {
				return types.NewError(ErrCodeTopologyInvalid,
					fmt.Sprintf("%s: duplicate router %q", dc.Location, router.Name))
			}
			routers[router.Name] = true

			for k, iface := range router.Interfaces {
				if _, err := netip.ParseAddr(iface.IP); err != nil {
					return types.WrapError(ErrCodeTopologyInvalid,
						fmt.Sprintf("%s/%s: interfaces[%d]: invalid ip %q", dc.Location, router.Name, k, iface.IP), err)
				}
			}
		}
	}
	return nil
}

// params converts the data center into seedDataCenterQuery parameters.
// Nested values are []any of map[string]any so the driver can pack them.
func (dc DataCenter) params() map[string]any {
	routers := make([]any, 0, len(dc.Routers))
	for _, router := range dc.Routers {
		interfaces := make([]any, 0, len(router.Interfaces))
		for _, iface := range router.Interfaces {
			interfaces = append(interfaces, map[string]any{
				PropIP:   iface.IP,
				PropName: iface.Name,
			})
		}
		routers = append(routers, map[string]any{
			PropName:     router.Name,
			"interfaces": interfaces,
		})
	}

	name := dc.Name
	if name == "" {
		name = dc.Location
	}
	return map[string]any{
		PropLocation: dc.Location,
		PropName:     name,
		"routers":    routers,
	}
}

// DefaultTopology is a small fixture with two data centers, one of them in Iceland.
func DefaultTopology() Topology {
	return Topology{
		DataCenters: []DataCenter{
			{
				Name:     "DC1",
				Location: DefaultLocation,
				Routers: []Router{
					{
						Name: "DC1-RE",
						Interfaces: []Interface{
							{Name: "eth0", IP: "10.1.0.254"},
							{Name: "eth1", IP: "10.1.1.254"},
						},
					},
					{
						Name: "DC1-R-1",
						Interfaces: []Interface{
							{Name: "eth0", IP: "10.1.1.1"},
						},
					},
				},
			},
			{
				Name:     "DC2",
				Location: "Ireland",
				Routers: []Router{
					{
						Name: "DC2-RE",
						Interfaces: []Interface{
							{Name: "eth0", IP: "10.2.0.254"},
						},
					},
				},
			},
		},
	}
}
