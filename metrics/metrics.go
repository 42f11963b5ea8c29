package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// CaseTransitions counts lifecycle transitions by target state
	CaseTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "social_cases",
		Name:      "case_transitions_total",
		Help:      "Social case lifecycle transitions by resulting state.",
	}, []string{"state"})

	// UpstreamRequests counts enrichment calls by service and outcome
	UpstreamRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "social_cases",
		Name:      "upstream_requests_total",
		Help:      "Calls to sibling services by service and outcome.",
	}, []string{"service", "outcome"})

	// RemindersSent counts intervention plan reminder emails
	RemindersSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "social_cases",
		Name:      "plan_reminders_total",
		Help:      "Intervention plan reminder emails by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(CaseTransitions, UpstreamRequests, RemindersSent)
}
