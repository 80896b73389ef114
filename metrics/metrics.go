package metrics

import (
	"context"

	"github.com/sygmaprotocol/sygma-core/observability"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

type X402Metrics struct {
	*HostMetrics
	*PaymentMetrics
}

// NewX402Metrics creates an instance of metrics
func NewX402Metrics(ctx context.Context, meter metric.Meter, env, serviceID, version string) (*X402Metrics, error) {
	opts := metric.WithAttributes(
		attribute.String("serviceid", serviceID),
		attribute.String("env", env),
		attribute.String("version", version),
	)

	hostMetrics, err := NewHostMetrics(ctx, meter, opts)
	if err != nil {
		return nil, err
	}

	paymentMetrics, err := NewPaymentMetrics(ctx, meter, opts)
	if err != nil {
		return nil, err
	}

	return &X402Metrics{
		HostMetrics:    hostMetrics,
		PaymentMetrics: paymentMetrics,
	}, nil
}

// InitMetricProvider exports metrics to the OpenTelemetry collector. Without
// a collector url the provider records without exporting.
func InitMetricProvider(ctx context.Context, collectorURL string) (*sdkmetric.MeterProvider, error) {
	if collectorURL == "" {
		return sdkmetric.NewMeterProvider(), nil
	}

	return observability.InitMetricProvider(ctx, collectorURL)
}
