package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_created_total",
			Help: "Total number of NOTIFIED edges created",
		},
		[]string{"reason"},
	)

	// NotificationsFailed counts notify attempts that errored; duplicates are not failures
	NotificationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_failed_total",
			Help: "Total number of notifications that could not be written",
		},
		[]string{"reason"},
	)

	NotificationsMarkedRead = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notifications_marked_read_total",
			Help: "Total number of notifications flipped to read",
		},
	)

	NotificationQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notification_query_duration_seconds",
			Help:    "Notification store operation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"operation"},
	)
)

// ObserveQuery records the duration of a notification store operation started at start
func ObserveQuery(operation string, start time.Time) {
	NotificationQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
