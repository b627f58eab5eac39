package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsScheduledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "itqan_sessions_scheduled_total",
		Help: "Sessions created by bulk scheduling, by entity type.",
	}, []string{"entity_type"})

	scheduleConflictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "itqan_schedule_conflicts_total",
		Help: "Candidate slots skipped because of a teacher conflict, by category of the colliding session.",
	}, []string{"category"})

	planValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "itqan_plan_validation_failures_total",
		Help: "Scheduling plans rejected by validation, by entity type and failing step.",
	}, []string{"entity_type", "step"})
)
