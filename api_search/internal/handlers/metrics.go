package handlers

import (
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mediasearch/pkg/apperr"
	"mediasearch/pkg/models"
	"mediasearch/pkg/monitoring"
)

const outcomeSuccess = "success"

type SearchMetrics struct {
	Requests  *prometheus.CounterVec
	Duration  *prometheus.HistogramVec
	Providers *prometheus.GaugeVec
}

func NewSearchMetrics(mc *monitoring.MetricsCollector) *SearchMetrics {
	return &SearchMetrics{
		Requests:  mc.NewCounter("catalog_requests_total", "Catalog operations by outcome", []string{"operation", "media_type", "outcome"}),
		Duration:  mc.NewHistogram("catalog_request_duration_seconds", "Catalog operation latency including the provider call", []string{"operation", "media_type"}, nil),
		Providers: mc.NewGauge("catalog_provider_available", "1 when a provider serves the media type, 0 otherwise", []string{"media_type"}),
	}
}

// Observe records one finished operation. The outcome label is "success" or
// the error kind.
func (m *SearchMetrics) Observe(operation, mediaType string, err error, elapsed time.Duration) {
	if m == nil || m.Requests == nil {
		return
	}

	outcome := outcomeSuccess
	if err != nil {
		outcome = apperr.KindOf(err).String()
	}
	m.Requests.WithLabelValues(operation, mediaType, outcome).Inc()

	if m.Duration != nil {
		m.Duration.WithLabelValues(operation, mediaType).Observe(elapsed.Seconds())
	}
}

// Reject counts a request that failed validation before any provider call.
func (m *SearchMetrics) Reject(operation, mediaType string, err error) {
	if m == nil || m.Requests == nil {
		return
	}
	m.Requests.WithLabelValues(operation, mediaType, apperr.KindOf(err).String()).Inc()
}

// RecordProviders publishes which media types have a provider.
func (m *SearchMetrics) RecordProviders(supported []models.MediaType) {
	if m == nil || m.Providers == nil {
		return
	}
	for _, mt := range models.AllMediaTypes() {
		value := 0.0
		if slices.Contains(supported, mt) {
			value = 1
		}
		m.Providers.WithLabelValues(mt.String()).Set(value)
	}
}
