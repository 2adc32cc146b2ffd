package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
)

func NewTracerProvider(ctx context.Context, res *resource.Resource, exporter Exporter) (*trace.TracerProvider, error) {
	opts := []trace.TracerProviderOption{
		trace.WithResource(res),
	}

	var (
		se  trace.SpanExporter
		err error
	)
	switch exporter {
	case ExporterNone, "":
	case ExporterStdout:
		se, err = stdouttrace.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout trace exporter: %w", err)
		}
	case ExporterOTLP:
		se, err = otlptracegrpc.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown telemetry exporter %q", exporter)
	}

	if se != nil {
		opts = append(opts, trace.WithBatcher(se, trace.WithBatchTimeout(1*time.Second)))
	}

	return trace.NewTracerProvider(opts...), nil
}

func NewMeterProvider(ctx context.Context, res *resource.Resource, exporter Exporter) (*metric.MeterProvider, error) {
	opts := []metric.Option{
		metric.WithResource(res),
	}

	var (
		me  metric.Exporter
		err error
	)
	switch exporter {
	case ExporterNone, "":
	case ExporterStdout:
		me, err = stdoutmetric.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout metric exporter: %w", err)
		}
	case ExporterOTLP:
		me, err = otlpmetricgrpc.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP metric exporter: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown telemetry exporter %q", exporter)
	}

	if me != nil {
		opts = append(opts, metric.WithReader(metric.NewPeriodicReader(me, metric.WithInterval(10*time.Second))))
	}

	return metric.NewMeterProvider(opts...), nil
}
