// Package metrics registers the Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics. Handlers and services tolerate a nil
// *Metrics so tests can skip registration.
type Metrics struct {
	CandidatesCreated    prometheus.Counter
	EventsAppended       *prometheus.CounterVec
	ChecklistEvaluations prometheus.Counter
	SubmissionsCompleted prometheus.Counter
	MetadataCorruption   prometheus.Counter
	AuditDropped         prometheus.Counter
	RequestDuration      *prometheus.HistogramVec
}

// New creates and registers all metrics on the default registry. Call once
// from main.
func New() *Metrics {
	return &Metrics{
		CandidatesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hireflow_candidates_created_total",
			Help: "Total number of candidates created.",
		}),
		EventsAppended: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hireflow_events_appended_total",
			Help: "Total events appended, labelled by stream.",
		}, []string{"stream"}),
		ChecklistEvaluations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hireflow_checklist_evaluations_total",
			Help: "Total checklist evaluations performed.",
		}),
		SubmissionsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hireflow_onboarding_submissions_total",
			Help: "Total onboarding submissions accepted.",
		}),
		MetadataCorruption: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hireflow_onboarding_metadata_corruption_total",
			Help: "Onboarding events whose metadata failed to decode and were replayed with defaults.",
		}),
		AuditDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hireflow_audit_events_dropped_total",
			Help: "Audit events dropped because the publish buffer was full.",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hireflow_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

func (m *Metrics) IncCandidatesCreated() {
	if m == nil {
		return
	}
	m.CandidatesCreated.Inc()
}

func (m *Metrics) IncEventsAppended(stream string) {
	if m == nil {
		return
	}
	m.EventsAppended.WithLabelValues(stream).Inc()
}

func (m *Metrics) IncChecklistEvaluations() {
	if m == nil {
		return
	}
	m.ChecklistEvaluations.Inc()
}

func (m *Metrics) IncSubmissionsCompleted() {
	if m == nil {
		return
	}
	m.SubmissionsCompleted.Inc()
}

func (m *Metrics) IncMetadataCorruption() {
	if m == nil {
		return
	}
	m.MetadataCorruption.Inc()
}

func (m *Metrics) IncAuditDropped() {
	if m == nil {
		return
	}
	m.AuditDropped.Inc()
}

func (m *Metrics) ObserveRequest(route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, status).Observe(seconds)
}
