// Package metrics exposes prometheus collectors for the bot runtime.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	WebhookEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "facebot_webhook_events_total",
			Help: "Count of received webhook events by kind",
		},
		[]string{"kind", "status"},
	)
	EventDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "facebot_event_duration_seconds",
			Help:    "Time taken to handle a webhook event",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"kind"},
	)
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "facebot_active_sessions",
			Help: "Current number of in-progress quiz sessions",
		},
	)
	RepliesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "facebot_replies_sent_total",
			Help: "Count of reply messages sent by type",
		},
		[]string{"type"},
	)
	APIFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "facebot_api_failures_total",
			Help: "Count of failed LINE API calls",
		},
		[]string{"endpoint"},
	)
)

func Init() {
	prometheus.MustRegister(
		WebhookEvents,
		EventDuration,
		ActiveSessions,
		RepliesSent,
		APIFailures,
	)
}
