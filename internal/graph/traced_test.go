package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func newTracedMock(t *testing.T) (*TracedGraphClient, *MockGraphClient, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	mock := NewMockGraphClient()
	return NewTracedGraphClient(mock, provider.Tracer("test"), "neo4j"), mock, recorder
}

func attrMap(attrs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(attrs))
	for _, kv := range attrs {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestTracedGraphClient_Query(t *testing.T) {
	client, mock, recorder := newTracedMock(t)
	ctx := context.Background()

	require.NoError(t, client.Connect(ctx))
	mock.AddQueryResult(QueryResult{
		Records: []map[string]any{{"ip": "10.0.0.1"}, {"ip": "10.0.0.2"}},
		Columns: []string{"ip"},
	})

	result, err := client.Query(ctx, "MATCH (n) RETURN n", map[string]any{"location": "Iceland", "b": 1})
	require.NoError(t, err)
	assert.Len(t, result.Records, 2)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, SpanGraphConnect, spans[0].Name())

	query := spans[1]
	assert.Equal(t, SpanGraphQuery, query.Name())
	assert.Equal(t, codes.Ok, query.Status().Code)

	attrs := attrMap(query.Attributes())
	assert.Equal(t, "neo4j", attrs["db.system"].AsString())
	assert.Equal(t, "neo4j", attrs["db.name"].AsString())
	assert.Equal(t, "MATCH (n) RETURN n", attrs["db.statement"].AsString())
	assert.Equal(t, []string{"b", "location"}, attrs["db.neo4j.params"].AsStringSlice())
	assert.Equal(t, int64(2), attrs["netmgmt.graph.rows"].AsInt64())
}

func TestTracedGraphClient_QueryError(t *testing.T) {
	client, mock, recorder := newTracedMock(t)
	ctx := context.Background()

	require.NoError(t, client.Connect(ctx))
	boom := errors.New("boom")
	mock.SetWriteError(boom)

	_, err := client.ExecuteWrite(ctx, "CREATE (n)", nil)
	require.ErrorIs(t, err, boom)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	write := spans[1]
	assert.Equal(t, SpanGraphWrite, write.Name())
	assert.Equal(t, codes.Error, write.Status().Code)
	assert.Equal(t, "boom", write.Status().Description)
	require.NotEmpty(t, write.Events())
	assert.Equal(t, "exception", write.Events()[0].Name)
}

func TestTracedGraphClient_Health(t *testing.T) {
	client, _, recorder := newTracedMock(t)
	ctx := context.Background()

	status := client.Health(ctx)
	assert.True(t, status.IsUnhealthy())

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, SpanGraphHealth, spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "unhealthy", attrMap(spans[0].Attributes())["netmgmt.health.state"].AsString())
}

func TestTracedGraphClient_Metrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = meterProvider.Shutdown(context.Background()) })

	mock := NewMockGraphClient()
	client := NewTracedGraphClient(mock, tracenoop.NewTracerProvider().Tracer("test"), "neo4j",
		WithMeter(meterProvider.Meter("test")))
	ctx := context.Background()

	require.NoError(t, client.Connect(ctx))
	mock.AddQueryResult(QueryResult{Records: []map[string]any{{"ip": "10.0.0.1"}, {"ip": "10.0.0.2"}}})
	_, err := client.Query(ctx, "MATCH (i:Interface) RETURN i.ip AS ip", nil)
	require.NoError(t, err)

	mock.SetWriteError(errors.New("read-only replica"))
	_, err = client.ExecuteWrite(ctx, "CREATE (n)", nil)
	require.Error(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	byName := make(map[string]metricdata.Metrics)
	for _, m := range rm.ScopeMetrics[0].Metrics {
		byName[m.Name] = m
	}

	statements, ok := byName[MetricGraphStatements].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, statements.DataPoints, 2)
	for _, dp := range statements.DataPoints {
		assert.Equal(t, int64(1), dp.Value)
		outcome, _ := dp.Attributes.Value("netmgmt.graph.outcome")
		operation, _ := dp.Attributes.Value("netmgmt.graph.operation")
		switch operation.AsString() {
		case SpanGraphQuery:
			assert.Equal(t, "ok", outcome.AsString())
		case SpanGraphWrite:
			assert.Equal(t, "error", outcome.AsString())
		default:
			t.Fatalf("unexpected operation %q", operation.AsString())
		}
	}

	rows, ok := byName[MetricGraphRows].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, rows.DataPoints, 1)
	assert.Equal(t, int64(2), rows.DataPoints[0].Value)

	duration, ok := byName[MetricGraphDuration].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	assert.Len(t, duration.DataPoints, 2)
}
