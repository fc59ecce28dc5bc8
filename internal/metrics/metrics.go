// Package metrics exposes Prometheus counters for registration submissions.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goliatone/go-regform/pkg/form"
)

// Submission outcomes.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Metrics provides observability for the registration form.
type Metrics struct {
	// Submissions by outcome
	Submissions *prometheus.CounterVec

	// Rejections by field
	FieldFailures *prometheus.CounterVec

	// HTTP request latency by route and status
	RequestLatency *prometheus.HistogramVec
}

// New registers the collectors on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "regform_submissions_total",
			Help: "Registration submissions by outcome",
		}, []string{"outcome"}),

		FieldFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "regform_field_failures_total",
			Help: "Field validation failures by field name",
		}, []string{"field"}),

		RequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "regform_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route and status code",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// Observer counts form transitions: Submitted is an accepted submission,
// EditingWithErrors a rejected one, and Validating → Editing a submitter
// failure.
func (m *Metrics) Observer() form.Observer {
	return func(event form.Event) {
		if m == nil {
			return
		}
		switch {
		case event.To == form.StateSubmitted:
			m.Submissions.WithLabelValues(OutcomeAccepted).Inc()
		case event.To == form.StateEditingWithErrors:
			m.Submissions.WithLabelValues(OutcomeRejected).Inc()
			for field := range event.Errors {
				m.FieldFailures.WithLabelValues(field).Inc()
			}
		case event.From == form.StateValidating && event.To == form.StateEditing:
			m.Submissions.WithLabelValues(OutcomeFailed).Inc()
		}
	}
}

// ObserveRequest records the latency of one HTTP request.
func (m *Metrics) ObserveRequest(route, status string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(route, status).Observe(d.Seconds())
	}
}
