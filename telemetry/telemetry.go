package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Exporter selects where metrics and spans go.
type Exporter string

const (
	ExporterNone   Exporter = "none"
	ExporterStdout Exporter = "stdout"
	ExporterOTLP   Exporter = "otlp"
)

type Telemetry struct {
	tp *trace.TracerProvider
	mp *metric.MeterProvider

	meter  otelmetric.Meter
	tracer oteltrace.Tracer

	workflowEvents otelmetric.Int64Counter

	serviceName    string
	serviceVersion string
}

func NewTelemetry(ctx context.Context, serviceName, serviceVersion string, exporter Exporter) (*Telemetry, error) {
	res := newResource(serviceName, serviceVersion)

	tp, err := NewTracerProvider(ctx, res, exporter)
	if err != nil {
		return nil, err
	}

	mp, err := NewMeterProvider(ctx, res, exporter)
	if err != nil {
		return nil, err
	}

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)

	return newTelemetry(tp, mp, serviceName, serviceVersion)
}

// NewWithReader builds a Telemetry that only feeds the given reader and
// leaves the global providers alone.
func NewWithReader(serviceName, serviceVersion string, reader metric.Reader) (*Telemetry, error) {
	res := newResource(serviceName, serviceVersion)
	tp := trace.NewTracerProvider(trace.WithResource(res))
	mp := metric.NewMeterProvider(metric.WithReader(reader), metric.WithResource(res))
	return newTelemetry(tp, mp, serviceName, serviceVersion)
}

func newResource(serviceName, serviceVersion string) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(serviceVersion),
	)
}

func newTelemetry(tp *trace.TracerProvider, mp *metric.MeterProvider, serviceName, serviceVersion string) (*Telemetry, error) {
	meter := mp.Meter(serviceName)

	workflowEvents, err := meter.Int64Counter(
		"workflow_events",
		otelmetric.WithDescription("Counts workflow creations and run triggers."),
		otelmetric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create workflow_events counter: %w", err)
	}

	return &Telemetry{
		tp: tp,
		mp: mp,

		meter:  meter,
		tracer: tp.Tracer(serviceName),

		workflowEvents: workflowEvents,

		serviceName:    serviceName,
		serviceVersion: serviceVersion,
	}, nil
}

func (t *Telemetry) Meter() otelmetric.Meter {
	return t.meter
}

func (t *Telemetry) Tracer() oteltrace.Tracer {
	return t.tracer
}

func (t *Telemetry) TraceStart(ctx context.Context, name string) (context.Context, oteltrace.Span) {
	return t.tracer.Start(ctx, name)
}

// Shutdown flushes both providers.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	return errors.Join(
		t.tp.Shutdown(ctx),
		t.mp.Shutdown(ctx),
	)
}
