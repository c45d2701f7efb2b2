package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shipkeeper_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shipkeeper_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	stateOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shipkeeper_state_operations_total",
		Help: "Count of state-document operations by entity, operation and result",
	}, []string{"entity", "op", "result"})

	notificationsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shipkeeper_notifications_emitted_total",
		Help: "Count of notifications produced by job lifecycle events",
	}, []string{"type"})

	overdueComponents = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "shipkeeper_overdue_components",
		Help: "Number of components past the maintenance overdue threshold",
	})

	unreadNotifications = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "shipkeeper_unread_notifications",
		Help: "Number of unread notifications in the document",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveStateOp increments the state-operation counter
func ObserveStateOp(entity, op, result string) {
	stateOperations.WithLabelValues(entity, op, result).Inc()
}

// ObserveNotification counts an emitted notification by type
func ObserveNotification(notificationType string) {
	notificationsEmitted.WithLabelValues(notificationType).Inc()
}

// SetOverdueComponents sets the overdue component gauge
func SetOverdueComponents(count int) {
	if count < 0 {
		count = 0
	}
	overdueComponents.Set(float64(count))
}

// SetUnreadNotifications sets the unread notification gauge
func SetUnreadNotifications(count int) {
	if count < 0 {
		count = 0
	}
	unreadNotifications.Set(float64(count))
}
