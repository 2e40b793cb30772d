package instrumentation

import (
	"context"
	"fmt"

	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const meterName = "github.com/mzafir/hawk-ai-agent"

// Provider owns the metrics pipeline: an OpenTelemetry meter provider
// exporting to the global Prometheus registry.
type Provider struct {
	meterProvider *sdkmetric.MeterProvider
	metrics       *Metrics
}

// NewProvider builds the metrics pipeline and the agent's metric set.
func NewProvider(serviceName, serviceVersion string) (*Provider, error) {
	exporter, err := otelprom.New()
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(serviceVersion),
	)

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)

	metrics, err := NewMetrics(mp.Meter(meterName))
	if err != nil {
		_ = mp.Shutdown(context.Background())
		return nil, err
	}

	return &Provider{meterProvider: mp, metrics: metrics}, nil
}

// Metrics returns the agent metric set.
func (p *Provider) Metrics() *Metrics {
	if p == nil {
		return nil
	}
	return p.metrics
}

// Meter exposes the underlying meter for ad hoc instruments.
func (p *Provider) Meter() metric.Meter {
	return p.meterProvider.Meter(meterName)
}

// Shutdown flushes and stops the metrics pipeline.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.meterProvider == nil {
		return nil
	}
	return p.meterProvider.Shutdown(ctx)
}
