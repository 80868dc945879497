package resilience

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/movewise/movewise/internal/provider/resilience"

// providerMetrics holds instruments for outbound provider requests. All
// clients share one set; the provider name is carried as an attribute.
type providerMetrics struct {
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

var (
	metricsOnce sync.Once
	metricsInst *providerMetrics
)

func sharedMetrics() *providerMetrics {
	metricsOnce.Do(func() {
		meter := otel.Meter(meterName)

		requestDuration, err := meter.Float64Histogram(
			"provider.request.duration",
			metric.WithDescription("Duration of provider requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			return
		}

		requestTotal, err := meter.Int64Counter(
			"provider.request.total",
			metric.WithDescription("Total number of provider requests"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			return
		}

		metricsInst = &providerMetrics{
			requestDuration: requestDuration,
			requestTotal:    requestTotal,
		}
	})
	return metricsInst
}

// recordRequest records the outcome of a provider request. The request
// context may already be canceled by the time we get here, so recording
// uses a background context.
func (m *providerMetrics) recordRequest(provider string, duration time.Duration, err error) {
	if m == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("provider.name", provider),
	}
	if err != nil {
		attrs = append(attrs, attribute.Bool("error", true))
	}

	ctx := context.Background()
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}
