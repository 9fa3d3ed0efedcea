package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config controls the meter and tracer providers.
type Config struct {
	ServiceName    string
	ServiceVersion string
	TracingEnabled bool
	SampleRatio    float64
	// Registerer receives the otel prometheus collector. Defaults to
	// prometheus.DefaultRegisterer so /metrics exposes both sets.
	Registerer prometheus.Registerer
	// SpanProcessors are attached to the tracer provider when tracing is on.
	SpanProcessors []sdktrace.SpanProcessor
}

type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	tracer         trace.Tracer
	meter          otelmetric.Meter

	dispatchCounter  otelmetric.Int64Counter
	dispatchDuration otelmetric.Float64Histogram
	catalogCounter   otelmetric.Int64Counter
}

func New(cfg Config) (*Observability, error) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "discogs-explorer"
	}
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
	)

	exporter, err := otelprom.New(otelprom.WithRegisterer(cfg.Registerer))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := metric.NewMeterProvider(
		metric.WithReader(exporter),
		metric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	o := &Observability{
		meterProvider: provider,
		meter:         provider.Meter(cfg.ServiceName),
	}

	if cfg.TracingEnabled {
		opts := []sdktrace.TracerProviderOption{
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		}
		for _, sp := range cfg.SpanProcessors {
			opts = append(opts, sdktrace.WithSpanProcessor(sp))
		}
		o.tracerProvider = sdktrace.NewTracerProvider(opts...)
		otel.SetTracerProvider(o.tracerProvider)
		o.tracer = o.tracerProvider.Tracer(cfg.ServiceName)
	} else {
		o.tracer = noop.NewTracerProvider().Tracer(cfg.ServiceName)
	}

	if o.dispatchCounter, err = o.meter.Int64Counter(
		"skill.dispatch.count",
		otelmetric.WithDescription("Number of dispatched skill requests"),
	); err != nil {
		return nil, fmt.Errorf("create dispatch counter: %w", err)
	}

	if o.dispatchDuration, err = o.meter.Float64Histogram(
		"skill.dispatch.duration",
		otelmetric.WithDescription("Skill request dispatch duration"),
		otelmetric.WithUnit("ms"),
	); err != nil {
		return nil, fmt.Errorf("create dispatch histogram: %w", err)
	}

	if o.catalogCounter, err = o.meter.Int64Counter(
		"catalog.calls",
		otelmetric.WithDescription("Number of catalog API calls"),
	); err != nil {
		return nil, fmt.Errorf("create catalog counter: %w", err)
	}

	return o, nil
}

// Tracer returns the tracer used for dispatch and catalog spans.
func (o *Observability) Tracer() trace.Tracer {
	if o == nil || o.tracer == nil {
		return noop.NewTracerProvider().Tracer("")
	}
	return o.tracer
}

func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return o.Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

func (o *Observability) RecordDispatch(ctx context.Context, handler, outcome string, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("handler", handler),
		attribute.String("outcome", outcome),
	)
	if o.dispatchCounter != nil {
		o.dispatchCounter.Add(ctx, 1, attrs)
	}
	if o.dispatchDuration != nil {
		o.dispatchDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

func (o *Observability) RecordCatalogCall(ctx context.Context, operation, outcome string) {
	if o == nil || o.catalogCounter == nil {
		return
	}
	o.catalogCounter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil {
		return nil
	}
	var errs []error
	if o.tracerProvider != nil {
		errs = append(errs, o.tracerProvider.Shutdown(ctx))
	}
	if o.meterProvider != nil {
		errs = append(errs, o.meterProvider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

// TraceID returns the hex trace id of the span in ctx, or "" when none is recording.
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
