package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MarcsonSantos/lu-estilo/pkg/config"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthErrorsCounter   prometheus.CounterVec

	// Order metrics
	OrdersPlacedCounter   prometheus.Counter
	OrderFailuresCounter  prometheus.CounterVec
	OrderItemsPlacedTotal prometheus.Counter

	// Notification metrics
	NotificationsSentCounter  prometheus.Counter
	NotificationErrorsCounter prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	prefix := cfg.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthErrorsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors by cause",
		},
		[]string{"cause"},
	)

	OrdersPlacedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_orders_placed_total",
			Help: "Total number of successfully placed orders",
		},
	)

	OrderFailuresCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_order_failures_total",
			Help: "Total number of rejected order placements by reason",
		},
		[]string{"reason"},
	)

	OrderItemsPlacedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_order_items_placed_total",
			Help: "Total number of order items across placed orders",
		},
	)

	NotificationsSentCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_notifications_sent_total",
			Help: "Total number of outbound notifications delivered",
		},
	)

	NotificationErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_notification_errors_total",
			Help: "Total number of outbound notification failures",
		},
	)
}

// RecordAuthError increments the auth error counter for the given cause.
// Causes stay internal: responses never distinguish them.
func RecordAuthError(cause string) {
	AuthErrorsCounter.WithLabelValues(cause).Inc()
}

// RecordOrderFailure increments the order failure counter for the given reason.
func RecordOrderFailure(reason string) {
	OrderFailuresCounter.WithLabelValues(reason).Inc()
}
