// Package telemetry configures the global OpenTelemetry tracer provider.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config selects where spans go. An empty Endpoint disables export.
type Config struct {
	ServiceName   string
	Endpoint      string
	Insecure      bool
	SamplingRatio float64
}

// ShutdownFunc flushes pending spans.
type ShutdownFunc func(ctx context.Context) error

// InitTracing installs a tracer provider exporting over OTLP/gRPC. Without an
// endpoint the global no-op provider is kept and the returned shutdown does
// nothing.
func InitTracing(ctx context.Context, cfg Config, logger *slog.Logger) (ShutdownFunc, error) {
	if cfg.Endpoint == "" {
		logger.Info("tracing disabled, no OTLP endpoint configured")
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
	))
	if err != nil {
		return nil, fmt.Errorf("build otel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio(cfg.SamplingRatio)))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("tracing enabled", "endpoint", cfg.Endpoint, "sampling_ratio", ratio(cfg.SamplingRatio))
	return tp.Shutdown, nil
}

func ratio(r float64) float64 {
	switch {
	case r <= 0:
		return 1
	case r > 1:
		return 1
	default:
		return r
	}
}
