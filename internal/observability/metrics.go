package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	httpRequestsTotal    *prometheus.CounterVec
	httpLatencySeconds   *prometheus.HistogramVec
	contactSubmissions   *prometheus.CounterVec
	referenceDataLoads   *prometheus.CounterVec
	storeMutations       *prometheus.CounterVec
	localCopyFailures    prometheus.Counter
	locationLookupsTotal *prometheus.CounterVec
	imageUploadsTotal    *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the portfolio service.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_http_requests_total",
			Help: "Total number of HTTP requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portfolio_http_latency_seconds",
			Help:    "Latency distribution for HTTP requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		contactSubmissions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_contact_submissions_total",
			Help: "Contact form submissions by outcome.",
		}, []string{"outcome"})

		referenceDataLoads = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_reference_data_loads_total",
			Help: "Reference data loads by kind and outcome.",
		}, []string{"kind", "outcome"})

		storeMutations = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_store_mutations_total",
			Help: "Local store mutations by table, operation and outcome.",
		}, []string{"table", "op", "outcome"})

		localCopyFailures = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_contact_local_copy_failures_total",
			Help: "Submitted contact messages whose local copy could not be stored.",
		})

		locationLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_location_lookups_total",
			Help: "Device location lookups by mode and outcome.",
		}, []string{"mode", "outcome"})

		imageUploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_image_uploads_total",
			Help: "Image uploads by outcome.",
		}, []string{"outcome"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			contactSubmissions,
			referenceDataLoads,
			storeMutations,
			localCopyFailures,
			locationLookupsTotal,
			imageUploadsTotal,
		)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// ContactSubmissions exposes the submission outcome counter.
func ContactSubmissions() *prometheus.CounterVec {
	RegisterMetrics()
	return contactSubmissions
}

// ReferenceDataLoads exposes the reference data load counter.
func ReferenceDataLoads() *prometheus.CounterVec {
	RegisterMetrics()
	return referenceDataLoads
}

// StoreMutations exposes the store mutation counter.
func StoreMutations() *prometheus.CounterVec {
	RegisterMetrics()
	return storeMutations
}

// LocalCopyFailures exposes the counter of swallowed local-copy failures.
func LocalCopyFailures() prometheus.Counter {
	RegisterMetrics()
	return localCopyFailures
}

// LocationLookups exposes the location lookup counter.
func LocationLookups() *prometheus.CounterVec {
	RegisterMetrics()
	return locationLookupsTotal
}

// ImageUploads exposes the image upload counter.
func ImageUploads() *prometheus.CounterVec {
	RegisterMetrics()
	return imageUploadsTotal
}
