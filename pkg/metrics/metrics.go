package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
		[]string{"service"},
	)

	// Business metrics
	ProviderQuoteRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_quote_requests_total",
			Help: "Total number of quote requests issued to providers",
		},
		[]string{"service", "provider", "status"},
	)

	ProviderQuoteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_quote_duration_seconds",
			Help:    "Provider quote call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "provider"},
	)

	QuotesReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "search_quotes_returned",
			Help:    "Number of quotes returned per search",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		},
		[]string{"service"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Total number of bookings created",
		},
		[]string{"service", "provider", "status"},
	)

	DatabaseQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "database_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"service", "operation", "status"},
	)

	DatabaseQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "database_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)

	RabbitMQMessagesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rabbitmq_messages_published_total",
			Help: "Total number of messages published to RabbitMQ",
		},
		[]string{"service", "queue", "status"},
	)
)

// RecordHTTPMetrics records HTTP request metrics
func RecordHTTPMetrics(service, method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	HttpRequestsTotal.WithLabelValues(service, method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(service, method, path, status).Observe(duration.Seconds())
}

// RecordProviderQuote records a single provider quote call
func RecordProviderQuote(service, provider string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ProviderQuoteRequests.WithLabelValues(service, provider, status).Inc()
	ProviderQuoteDuration.WithLabelValues(service, provider).Observe(duration.Seconds())
}

// RecordBooking records a created booking
func RecordBooking(service, provider string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	BookingsTotal.WithLabelValues(service, provider, status).Inc()
}

// RecordDatabaseQuery records database query metrics
func RecordDatabaseQuery(service, operation string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	DatabaseQueriesTotal.WithLabelValues(service, operation, status).Inc()
	DatabaseQueryDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// RecordRabbitMQPublish records RabbitMQ publish metrics
func RecordRabbitMQPublish(service, queue string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	RabbitMQMessagesPublished.WithLabelValues(service, queue, status).Inc()
}
