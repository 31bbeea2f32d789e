package graph

import (
	"context"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/neo4j-graph-examples/network-management/internal/types"
)

// Span names emitted by TracedGraphClient.
const (
	SpanGraphConnect = "netmgmt.graph.connect"
	SpanGraphClose   = "netmgmt.graph.close"
	SpanGraphHealth  = "netmgmt.graph.health"
	SpanGraphQuery   = "netmgmt.graph.query"
	SpanGraphWrite   = "netmgmt.graph.write"
)

// Metric names recorded by TracedGraphClient.
const (
	MetricGraphStatements = "netmgmt.graph.statements"
	MetricGraphDuration   = "netmgmt.graph.duration"
	MetricGraphRows       = "netmgmt.graph.rows"
)

// TracedGraphClient wraps a GraphClient with OpenTelemetry spans and metrics.
//
// Every span carries db.system=neo4j and db.name; statement spans also record
// db.statement, the parameter names and the number of rows returned.
type TracedGraphClient struct {
	inner    GraphClient
	tracer   trace.Tracer
	database string

	statements metric.Int64Counter
	duration   metric.Float64Histogram
	rows       metric.Int64Counter
}

var _ GraphClient = (*TracedGraphClient)(nil)

// TracedOption configures a TracedGraphClient.
type TracedOption func(*tracedOptions)

type tracedOptions struct {
	meter metric.Meter
}

// WithMeter records statement metrics on meter. Without it metrics are discarded.
func WithMeter(meter metric.Meter) TracedOption {
	return func(o *tracedOptions) {
		if meter != nil {
			o.meter = meter
		}
	}
}

// NewTracedGraphClient decorates inner with spans from tracer.
func NewTracedGraphClient(inner GraphClient, tracer trace.Tracer, database string, opts ...TracedOption) *TracedGraphClient {
	options := tracedOptions{meter: noop.NewMeterProvider().Meter("")}
	for _, opt := range opts {
		opt(&options)
	}

	c := &TracedGraphClient{
		inner:    inner,
		tracer:   tracer,
		database: database,
	}
	c.initInstruments(options.meter)
	return c
}

// initInstruments falls back to no-op instruments when the meter rejects one.
func (c *TracedGraphClient) initInstruments(meter metric.Meter) {
	fallback := noop.NewMeterProvider().Meter("")

	var err error
	if c.statements, err = meter.Int64Counter(MetricGraphStatements,
		metric.WithDescription("Statements executed against the graph database"),
		metric.WithUnit("{statement}")); err != nil {
		c.statements, _ = fallback.Int64Counter(MetricGraphStatements)
	}
	if c.duration, err = meter.Float64Histogram(MetricGraphDuration,
		metric.WithDescription("Statement latency including transaction retries"),
		metric.WithUnit("ms")); err != nil {
		c.duration, _ = fallback.Float64Histogram(MetricGraphDuration)
	}
	if c.rows, err = meter.Int64Counter(MetricGraphRows,
		metric.WithDescription("Rows returned by read statements"),
		metric.WithUnit("{row}")); err != nil {
		c.rows, _ = fallback.Int64Counter(MetricGraphRows)
	}
}

func (c *TracedGraphClient) baseAttributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("db.system", "neo4j"),
		attribute.String("db.name", c.database),
	}
}

func (c *TracedGraphClient) Connect(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, SpanGraphConnect, trace.WithAttributes(c.baseAttributes()...))
	defer span.End()

	err := c.inner.Connect(ctx)
	finishSpan(span, err, "connected")
	return err
}

func (c *TracedGraphClient) Close(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, SpanGraphClose, trace.WithAttributes(c.baseAttributes()...))
	defer span.End()

	err := c.inner.Close(ctx)
	finishSpan(span, err, "closed")
	return err
}

func (c *TracedGraphClient) Health(ctx context.Context) types.HealthStatus {
	ctx, span := c.tracer.Start(ctx, SpanGraphHealth, trace.WithAttributes(c.baseAttributes()...))
	defer span.End()

	status := c.inner.Health(ctx)
	span.SetAttributes(
		attribute.String("netmgmt.health.state", status.State.String()),
		attribute.Int64("netmgmt.health.latency_ms", status.Latency.Milliseconds()),
	)
	if status.IsUnhealthy() {
		span.SetStatus(codes.Error, status.Message)
	} else {
		span.SetStatus(codes.Ok, status.Message)
	}
	return status
}

func (c *TracedGraphClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	return c.traceStatement(ctx, SpanGraphQuery, cypher, params, c.inner.Query)
}

func (c *TracedGraphClient) ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	return c.traceStatement(ctx, SpanGraphWrite, cypher, params, c.inner.ExecuteWrite)
}

type statementFunc func(ctx context.Context, cypher string, params map[string]any) (QueryResult, error)

func (c *TracedGraphClient) traceStatement(ctx context.Context, name, cypher string, params map[string]any, run statementFunc) (QueryResult, error) {
	attrs := append(c.baseAttributes(),
		attribute.String("db.statement", cypher),
		attribute.StringSlice("db.neo4j.params", paramNames(params)),
	)
	ctx, span := c.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	defer span.End()

	start := time.Now()
	result, err := run(ctx, cypher, params)
	elapsed := float64(time.Since(start).Microseconds()) / 1000
	span.SetAttributes(attribute.Float64("netmgmt.graph.duration_ms", elapsed))

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metricAttrs := metric.WithAttributes(
		attribute.String("db.name", c.database),
		attribute.String("netmgmt.graph.operation", name),
		attribute.String("netmgmt.graph.outcome", outcome),
	)
	c.statements.Add(ctx, 1, metricAttrs)
	c.duration.Record(ctx, elapsed, metricAttrs)

	if err == nil {
		c.rows.Add(ctx, int64(len(result.Records)), metricAttrs)
		span.SetAttributes(
			attribute.Int("netmgmt.graph.rows", len(result.Records)),
			attribute.Int("netmgmt.graph.nodes_created", result.Summary.NodesCreated),
			attribute.Int("netmgmt.graph.relationships_created", result.Summary.RelationshipsCreated),
		)
	}
	finishSpan(span, err, "ok")
	return result, err
}

func finishSpan(span trace.Span, err error, okMessage string) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if code := types.CodeOf(err); code != "" {
			span.SetAttributes(attribute.String("error.code", string(code)))
		}
		return
	}
	span.SetStatus(codes.Ok, okMessage)
}

// paramNames returns the sorted parameter names; values are never put on spans.
func paramNames(params map[string]any) []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
