package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
// Make fields public so they can be accessed from other packages.
type AppMetrics struct {
	GenerationRequestsTotal   metric.Int64Counter
	GenerationDurationSeconds metric.Float64Histogram
	AICallDurationSeconds     metric.Float64Histogram
	AICallErrorsTotal         metric.Int64Counter
	ExportRequestsTotal       metric.Int64Counter
	ExportErrorsTotal         metric.Int64Counter
}

var (
	// Global instance of AppMetrics (initialized once)
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("TripGenie")
		var err error
		m := &AppMetrics{}

		m.GenerationRequestsTotal, err = meter.Int64Counter(
			"itinerary_generation_requests_total",
			metric.WithDescription("Total number of itinerary generation requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_generation_requests_total: %v", err)
		}

		m.GenerationDurationSeconds, err = meter.Float64Histogram(
			"itinerary_generation_duration_seconds",
			metric.WithDescription("Duration of itinerary generation requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_generation_duration_seconds: %v", err)
		}

		m.AICallDurationSeconds, err = meter.Float64Histogram(
			"ai_call_duration_seconds",
			metric.WithDescription("Duration of blocking AI completion calls in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create ai_call_duration_seconds: %v", err)
		}

		m.AICallErrorsTotal, err = meter.Int64Counter(
			"ai_call_errors_total",
			metric.WithDescription("Total number of failed AI completion calls"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create ai_call_errors_total: %v", err)
		}

		m.ExportRequestsTotal, err = meter.Int64Counter(
			"export_requests_total",
			metric.WithDescription("Total number of export requests by kind"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create export_requests_total: %v", err)
		}

		m.ExportErrorsTotal, err = meter.Int64Counter(
			"export_errors_total",
			metric.WithDescription("Total number of failed export requests by kind"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create export_errors_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the global AppMetrics instance, initializing it if needed.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
