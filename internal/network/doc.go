// Package network models the network-management graph and answers questions about it.
//
// The graph schema is
//
//	(:DataCenter {location})-[:CONTAINS]->(:Router {name})-[:ROUTES]->(:Interface {ip})
//
// and the central lookup lists the interface IPs of the data center at a given location:
//
//	repo := network.NewRepository(client)
//	ips, err := repo.InterfaceIPs(ctx, network.DefaultLocation)
//
// Topologies can be seeded from YAML fixtures with LoadTopology and Repository.Seed.
package network
