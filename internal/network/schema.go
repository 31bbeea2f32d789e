package network

// Node labels of the network-management graph.
const (
	LabelDataCenter = "DataCenter"
	LabelRouter     = "Router"
	LabelInterface  = "Interface"
)

// Relationship types: (DataCenter)-[:CONTAINS]->(Router)-[:ROUTES]->(Interface).
const (
	RelContains = "CONTAINS"
	RelRoutes   = "ROUTES"
)

// Property keys.
const (
	PropLocation = "location"
	PropName     = "name"
	PropIP       = "ip"
)

const (
	// InterfacesByLocationQuery lists the IP of every interface routed by a router
	// contained in the data center at $location.
	InterfacesByLocationQuery = "MATCH (dc:DataCenter {location: $location})-[:CONTAINS]->(r:Router)-[:ROUTES]->(i:Interface)\n" +
		"RETURN i.ip as ip"

	// LocationParam is the single parameter bound by InterfacesByLocationQuery.
	LocationParam = "location"

	// IPField is the column projected by InterfacesByLocationQuery.
	IPField = "ip"

	// DefaultLocation is queried when no location is given.
	DefaultLocation = "Iceland"
)

const countsQuery = `
OPTIONAL MATCH (dc:DataCenter)
WITH count(dc) AS dataCenters
OPTIONAL MATCH (r:Router)
WITH dataCenters, count(r) AS routers
OPTIONAL MATCH (i:Interface)
RETURN dataCenters, routers, count(i) AS interfaces
`

// seedDataCenterQuery merges one data center and everything below it.
// Routers are scoped to their data center and interfaces to their router.
const seedDataCenterQuery = `
MERGE (dc:DataCenter {location: $location})
SET dc.name = $name
WITH dc
UNWIND $routers AS router
MERGE (dc)-[:CONTAINS]->(r:Router {name: router.name})
WITH r, router
UNWIND router.interfaces AS iface
MERGE (r)-[:ROUTES]->(i:Interface {ip: iface.ip})
SET i.name = iface.name
`
