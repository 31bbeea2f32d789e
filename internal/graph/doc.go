// Package graph provides a small graph database client abstraction.
//
//   - GraphClient: the operations the rest of the module depends on
//   - Neo4jClient: implementation on the official Neo4j Go driver
//   - TracedGraphClient: OpenTelemetry decorator for any GraphClient
//   - MockGraphClient: in-memory implementation for unit tests
//
// Usage:
//
//	config := graph.DefaultConfig()
//	config.URI = "neo4j://db.example.com:7687"
//	config.Password = os.Getenv("NEO4J_PASSWORD")
//
//	client, err := graph.NewNeo4jClient(config)
//	if err != nil {
//	    return err
//	}
//	if err := client.Connect(ctx); err != nil {
//	    return err
//	}
//	defer client.Close(ctx)
//
//	result, err := client.Query(ctx, "MATCH (n:Router) RETURN n.name AS name", nil)
//
// Query runs in a managed read transaction and ExecuteWrite in a managed write
// transaction; both open a session scoped to the configured database for that
// one unit of work and collect all records before returning. Routing, retries
// and connection pooling are left to the driver.
//
// Encryption is chosen by URI scheme: bolt:// and neo4j:// are plain text,
// the +s variants verify certificates and the +ssc variants accept self-signed ones.
//
// All errors are *types.NetError values carrying one of the ErrCodeGraph* codes.
package graph
