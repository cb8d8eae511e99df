package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider   *metric.MeterProvider
	meter           otelmetric.Meter
	commandCounter  otelmetric.Int64Counter
	commandDuration otelmetric.Float64Histogram
	tracing         *tracing
}

// New sets up the prometheus metric exporter and tracing. An empty
// jaegerEndpoint keeps spans in process.
func New(serviceName, jaegerEndpoint string) *Observability {
	o := &Observability{tracing: newTracing(serviceName, jaegerEndpoint)}

	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return o
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	commandCounter, _ := meter.Int64Counter(
		"voice.commands.processed",
		otelmetric.WithDescription("Number of voice commands interpreted"),
	)

	commandDuration, _ := meter.Float64Histogram(
		"voice.commands.duration",
		otelmetric.WithDescription("Command interpretation duration"),
		otelmetric.WithUnit("ms"),
	)

	o.meterProvider = provider
	o.meter = meter
	o.commandCounter = commandCounter
	o.commandDuration = commandDuration
	return o
}

// RecordCommand counts one interpreted command.
func (o *Observability) RecordCommand(ctx context.Context, locale, intent, outcome string) {
	if o.commandCounter != nil {
		o.commandCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("locale", locale),
			attribute.String("intent", intent),
			attribute.String("outcome", outcome),
		))
	}
}

func (o *Observability) RecordDuration(ctx context.Context, duration time.Duration, intent string) {
	if o.commandDuration != nil {
		o.commandDuration.Record(ctx, float64(duration.Microseconds())/1000, otelmetric.WithAttributes(
			attribute.String("intent", intent),
		))
	}
}

func (o *Observability) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
	o.tracing.shutdown(ctx)
}
