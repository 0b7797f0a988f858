// internal/app/system/metrics/metrics.go

// Package metrics registers the prometheus collectors for the event
// workflows and serves them on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RegistrationsAccepted counts registrations that passed every
	// integrity check and were persisted.
	RegistrationsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campushub_registrations_accepted_total",
		Help: "Registrations accepted and persisted.",
	})

	// RegistrationsRejected counts rejected registrations by reason.
	RegistrationsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campushub_registrations_rejected_total",
		Help: "Registrations rejected, labeled by reason.",
	}, []string{"reason"})

	// PaymentsCompleted counts pending→completed payment transitions
	// that committed (each increments fees exactly once).
	PaymentsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campushub_payments_completed_total",
		Help: "Payment transitions committed to completed.",
	})

	// AttendanceMarked counts successful attendance submissions.
	AttendanceMarked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campushub_attendance_marked_total",
		Help: "Attendance sheets accepted for events.",
	})

	// AggregationFailures counts department record fan-outs and sweeps
	// that failed after the event's own write committed.
	AggregationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campushub_attendance_aggregation_failures_total",
		Help: "Department attendance fan-outs that failed after the primary write.",
	})
)

// Handler returns the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
