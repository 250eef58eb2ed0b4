package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	metricSDK "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	traceSDK "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
)

// Config holds telemetry configuration for a service
type Config struct {
	ServiceName    string
	ServiceVersion string
	OTLPEndpoint   string
}

type Telemetry struct {
	tracer trace.Tracer
	meter  metric.Meter
	config Config
}

// Init sets up OpenTelemetry with OTLP and Prometheus exporters and
// installs the global providers. The returned shutdown flushes both.
func Init(ctx context.Context, config Config) (*Telemetry, func(), error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.ServiceName),
			semconv.ServiceVersionKey.String(config.ServiceVersion),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	traceExporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(config.OTLPEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, nil, err
	}

	traceProvider := traceSDK.NewTracerProvider(
		traceSDK.WithBatcher(traceExporter),
		traceSDK.WithResource(res),
		traceSDK.WithSampler(traceSDK.AlwaysSample()),
	)

	prometheusExporter, err := prometheus.New()
	if err != nil {
		return nil, nil, err
	}

	otlpExporter, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(config.OTLPEndpoint),
		otlpmetrichttp.WithInsecure(),
	)
	if err != nil {
		return nil, nil, err
	}

	meterProvider := metricSDK.NewMeterProvider(
		metricSDK.WithResource(res),
		metricSDK.WithReader(prometheusExporter),
		metricSDK.WithReader(metricSDK.NewPeriodicReader(otlpExporter,
			metricSDK.WithInterval(30*time.Second),
		)),
	)

	otel.SetTracerProvider(traceProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	tel := &Telemetry{
		config: config,
		tracer: otel.Tracer(config.ServiceName),
		meter:  otel.Meter(config.ServiceName),
	}

	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = traceProvider.Shutdown(ctx)
		_ = meterProvider.Shutdown(ctx)
	}

	return tel, shutdown, nil
}

// StartSpan starts a new trace span
func (t *Telemetry) StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, opts...)
}

// Meter returns the meter instance for creating custom metrics
func (t *Telemetry) Meter() metric.Meter {
	return t.meter
}

// ServiceName returns the service name
func (t *Telemetry) ServiceName() string {
	return t.config.ServiceName
}

type contextKey string

const telemetryKey contextKey = "telemetry"

// WithTelemetry injects telemetry into context
func WithTelemetry(ctx context.Context, tel *Telemetry) context.Context {
	return context.WithValue(ctx, telemetryKey, tel)
}

// FromContext extracts telemetry from context
func FromContext(ctx context.Context) *Telemetry {
	if tel, ok := ctx.Value(telemetryKey).(*Telemetry); ok {
		return tel
	}
	return nil
}

// StartSpan starts a span using the telemetry in context, falling back
// to the global tracer.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if tel := FromContext(ctx); tel != nil {
		return tel.StartSpan(ctx, name, opts...)
	}
	return otel.Tracer("fallback").Start(ctx, name, opts...)
}

func meterFrom(ctx context.Context) (metric.Meter, string) {
	if tel := FromContext(ctx); tel != nil {
		return tel.Meter(), tel.ServiceName()
	}
	return otel.Meter("fallback"), "unknown"
}

// RecordCounter records a counter metric
func RecordCounter(ctx context.Context, name, description string, value int64, attrs ...attribute.KeyValue) {
	meter, serviceName := meterFrom(ctx)
	counter, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		return
	}
	attrs = append(attrs, attribute.String("service", serviceName))
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

// RecordHistogram records a histogram metric
func RecordHistogram(ctx context.Context, name, description string, value float64, attrs ...attribute.KeyValue) {
	meter, serviceName := meterFrom(ctx)
	histogram, err := meter.Float64Histogram(name, metric.WithDescription(description))
	if err != nil {
		return
	}
	attrs = append(attrs, attribute.String("service", serviceName))
	histogram.Record(ctx, value, metric.WithAttributes(attrs...))
}

// CountSagaTransition bumps the saga transition counter. Terminal states
// are how deletion outcomes show up on dashboards, so the label set is
// deliberately small and stable.
func CountSagaTransition(ctx context.Context, status string) {
	RecordCounter(ctx, "gdpr_saga_transitions_total", "GDPR deletion saga status transitions", 1,
		attribute.String("status", status),
	)
}

// CountStepResult bumps the per-participant step result counter
func CountStepResult(ctx context.Context, participant string, success bool) {
	RecordCounter(ctx, "gdpr_step_results_total", "GDPR deletion step results", 1,
		attribute.String("participant", participant),
		attribute.Bool("success", success),
	)
}
