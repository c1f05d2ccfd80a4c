package observability

import (
	"context"
	"log"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	meter          otelmetric.Meter
	tracer         trace.Tracer
	genCounter     otelmetric.Int64Counter
	genDuration    otelmetric.Float64Histogram
}

type options struct {
	registerer     promclient.Registerer
	jaegerEndpoint string
	sampleRatio    float64
	spanProcessors []sdktrace.SpanProcessor
}

// Option customizes New.
type Option func(*options)

// WithRegisterer sends otel metrics to reg instead of the default Prometheus registry.
func WithRegisterer(reg promclient.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithJaeger exports spans to a Jaeger collector endpoint.
func WithJaeger(endpoint string, sampleRatio float64) Option {
	return func(o *options) {
		o.jaegerEndpoint = endpoint
		o.sampleRatio = sampleRatio
	}
}

// WithSpanProcessor registers an extra span processor (tests use tracetest.SpanRecorder).
func WithSpanProcessor(sp sdktrace.SpanProcessor) Option {
	return func(o *options) { o.spanProcessors = append(o.spanProcessors, sp) }
}

func New(serviceName string, opts ...Option) *Observability {
	o := &options{sampleRatio: 1}
	for _, opt := range opts {
		opt(o)
	}

	obs := &Observability{}
	obs.initTracing(serviceName, o)
	obs.initMetrics(serviceName, o)
	return obs
}

func (o *Observability) initMetrics(serviceName string, opts *options) {
	var exporterOpts []prometheus.Option
	if opts.registerer != nil {
		exporterOpts = append(exporterOpts, prometheus.WithRegisterer(opts.registerer))
	}

	exporter, err := prometheus.New(exporterOpts...)
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	genCounter, _ := meter.Int64Counter(
		"generations.processed",
		otelmetric.WithDescription("Number of entity generations processed"),
	)

	genDuration, _ := meter.Float64Histogram(
		"generations.duration",
		otelmetric.WithDescription("Entity generation duration"),
		otelmetric.WithUnit("ms"),
	)

	o.meterProvider = provider
	o.meter = meter
	o.genCounter = genCounter
	o.genDuration = genDuration
}

func (o *Observability) initTracing(serviceName string, opts *options) {
	res := resource.NewSchemaless(attribute.String("service.name", serviceName))

	tpOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opts.sampleRatio))),
	}

	if opts.jaegerEndpoint != "" {
		exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(opts.jaegerEndpoint)))
		if err != nil {
			log.Printf("Failed to create Jaeger exporter: %v", err)
		} else {
			tpOpts = append(tpOpts, sdktrace.WithBatcher(exporter))
		}
	}
	for _, sp := range opts.spanProcessors {
		tpOpts = append(tpOpts, sdktrace.WithSpanProcessor(sp))
	}

	provider := sdktrace.NewTracerProvider(tpOpts...)
	otel.SetTracerProvider(provider)

	o.tracerProvider = provider
	o.tracer = provider.Tracer(serviceName)
}

// StartGeneration opens a span around a single entity generation.
func (o *Observability) StartGeneration(ctx context.Context, entityType string) (context.Context, trace.Span) {
	if o == nil || o.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return o.tracer.Start(ctx, "generator.Execute", trace.WithAttributes(
		attribute.String("entity.type", entityType),
	))
}

func (o *Observability) RecordGeneration(ctx context.Context, entityType, status string) {
	if o != nil && o.genCounter != nil {
		o.genCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("entity_type", entityType),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordGenerationDuration(ctx context.Context, duration time.Duration, entityType string) {
	if o != nil && o.genDuration != nil {
		o.genDuration.Record(ctx, float64(duration.Microseconds())/1000, otelmetric.WithAttributes(
			attribute.String("entity_type", entityType),
		))
	}
}

func (o *Observability) Shutdown() {
	if o == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if o.tracerProvider != nil {
		_ = o.tracerProvider.Shutdown(ctx)
	}
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
}
