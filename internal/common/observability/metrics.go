package observability

import (
	"context"
	"time"

	"onboarding-intake/internal/common/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	meter          otelmetric.Meter
	tracer         trace.Tracer
	notifications  otelmetric.Int64Counter
	stepDuration   otelmetric.Float64Histogram
}

// Nop returns an Observability that records nothing. Safe for tests.
func Nop() *Observability {
	return &Observability{tracer: noop.NewTracerProvider().Tracer("noop")}
}

// New wires an OTel meter provider exported through the Prometheus registry
// and a tracer provider whose span ids are attached to log lines.
func New(serviceName string, log logger.Logger, opts ...prometheus.Option) *Observability {
	exporter, err := prometheus.New(opts...)
	if err != nil {
		log.Warn("failed to create prometheus exporter, telemetry disabled", map[string]interface{}{
			"error": err,
		})
		return Nop()
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	tracerProvider := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tracerProvider)

	meter := provider.Meter(serviceName)

	// Instrument names use underscores so the exporter does not carry dots into Prometheus.
	notifications, _ := meter.Int64Counter(
		"onboarding_notifications",
		otelmetric.WithDescription("Number of HR notifications by kind and delivery result"),
	)

	stepDuration, _ := meter.Float64Histogram(
		"onboarding_step_duration",
		otelmetric.WithDescription("Duration of each onboarding workflow step"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:  provider,
		tracerProvider: tracerProvider,
		meter:          meter,
		tracer:         tracerProvider.Tracer(serviceName),
		notifications:  notifications,
		stepDuration:   stepDuration,
	}
}

// StartSpan starts a span named after a workflow step.
func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if o == nil || o.tracer == nil {
		return noop.NewTracerProvider().Tracer("noop").Start(ctx, name)
	}
	return o.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// TraceID returns the trace id of the span in ctx, or "" when there is none.
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}

// RecordNotification counts one notification handed to the observers.
func (o *Observability) RecordNotification(ctx context.Context, kind string, delivered bool) {
	if o != nil && o.notifications != nil {
		o.notifications.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("kind", kind),
			attribute.Bool("delivered", delivered),
		))
	}
}

func (o *Observability) RecordStep(ctx context.Context, step string, duration time.Duration, err error) {
	if o == nil || o.stepDuration == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	o.stepDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
		attribute.String("step", step),
		attribute.String("status", status),
	))
}

func (o *Observability) Shutdown() {
	if o == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
	if o.tracerProvider != nil {
		_ = o.tracerProvider.Shutdown(ctx)
	}
}
