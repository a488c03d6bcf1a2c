package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "notekeeper",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "notekeeper",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	// Domain metrics

	NoteOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "notekeeper",
		Name:      "note_operations_total",
		Help:      "Note service operations, by operation and outcome.",
	}, []string{"operation", "outcome"})

	NoteEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "notekeeper",
		Name:      "note_events_consumed_total",
		Help:      "Note lifecycle events seen by the activity consumer.",
	}, []string{"type"})

	LoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "notekeeper",
		Name:      "logins_total",
		Help:      "Login attempts, by outcome (success, provisioned, rejected).",
	}, []string{"outcome"})
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		NoteOperationsTotal,
		NoteEventsTotal,
		LoginsTotal,
	)
}
