package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc/credentials"

	"github.com/neo4j-graph-examples/network-management/internal/config"
	"github.com/neo4j-graph-examples/network-management/internal/types"
	"github.com/neo4j-graph-examples/network-management/pkg/version"
)

// InitMetrics builds and installs a global meter provider.
// A disabled config yields a no-op provider.
func InitMetrics(ctx context.Context, cfg config.MetricsConfig) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}
	if cfg.Endpoint == "" {
		return nil, types.NewError(ErrCodeMetricsInit, "metrics endpoint is required when metrics are enabled")
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(version.Version),
		),
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
	)
	if err != nil {
		return nil, types.WrapError(ErrCodeMetricsInit, "failed to create resource", err)
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	} else {
		opts = append(opts, otlpmetricgrpc.WithTLSCredentials(credentials.NewTLS(nil)))
	}

	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, types.WrapRetryableError(ErrCodeMetricsInit, "failed to create OTLP metric exporter", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.ExportInterval))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)
	return provider, nil
}

// ShutdownMetrics flushes pending measurements when provider supports it.
func ShutdownMetrics(ctx context.Context, provider metric.MeterProvider) error {
	sdkProvider, ok := provider.(*sdkmetric.MeterProvider)
	if !ok {
		return nil
	}
	if err := sdkProvider.Shutdown(ctx); err != nil {
		return types.WrapError(ErrCodeMetricsShutdown, "failed to shut down meter provider", err)
	}
	return nil
}

// Meter returns the module meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(TracerName)
}
