package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ScheduleValidator is the shared contract of the five entity validators.
// Methods that consult session or subscription state take a context and can
// fail with an infrastructure error; a Result is the validation verdict.
type ScheduleValidator interface {
	// ValidateDaySelection checks the chosen weekdays against the entity's
	// per-week caps and recommendations.
	ValidateDaySelection(ctx context.Context, days []time.Weekday) (Result, error)

	// ValidateSessionCount checks the requested session count against the
	// remaining budget and the entity's sanity ceiling.
	ValidateSessionCount(ctx context.Context, count int) (Result, error)

	// ValidateDateRange checks the requested start date and horizon against
	// the entity's earliest allowed date and natural expiry. A nil start
	// means "from today".
	ValidateDateRange(ctx context.Context, startDate *time.Time, weeksAhead int) (Result, error)

	// ValidateWeeklyPacing checks len(days) x weeksAhead against the
	// remaining budget and the recommended weekly rate.
	ValidateWeeklyPacing(ctx context.Context, days []time.Weekday, weeksAhead int) (Result, error)

	// Recommendations returns the advisory pacing numbers for the dashboard.
	Recommendations(ctx context.Context) (Recommendations, error)

	// SchedulingStatus returns the coarse dashboard signal. Never gates an
	// operation.
	SchedulingStatus(ctx context.Context) (SchedulingStatus, error)

	// MaxScheduleDate is the latest date sessions may be placed on, or nil
	// for continuous entities.
	MaxScheduleDate() *time.Time
}

// Recommendations is advisory output, never a gate.
type Recommendations struct {
	RecommendedDaysPerWeek int    `json:"recommended_days_per_week"`
	MaxDaysPerWeek         int    `json:"max_days_per_week"`
	RemainingSessions      int    `json:"remaining_sessions"`
	WeeksRemaining         int    `json:"weeks_remaining"`
	Reason                 string `json:"reason"`
}

// ScheduleState is the closed set of dashboard states across all entity
// families.
type ScheduleState string

const (
	StateNotScheduled       ScheduleState = "not_scheduled"
	StatePartiallyScheduled ScheduleState = "partially_scheduled"
	StateWellScheduled      ScheduleState = "well_scheduled"
	StateFullyScheduled     ScheduleState = "fully_scheduled"
	StateExpired            ScheduleState = "expired"
	StateInactive           ScheduleState = "inactive"
	StateScheduled          ScheduleState = "scheduled"
	StateCompleted          ScheduleState = "completed"
)

// SchedulingStatus is the structured dashboard signal.
type SchedulingStatus struct {
	State       ScheduleState `json:"state"`
	Message     string        `json:"message"`
	Color       string        `json:"color"`
	CanSchedule bool          `json:"can_schedule"`
	Urgent      bool          `json:"urgent"`
}

// SessionCounter is the shared session-accounting collaborator. Counting
// stays here, not in the validators, so the set of counted statuses cannot
// drift from the billing subsystem: "used" always means scheduled, ongoing
// or completed.
type SessionCounter interface {
	CountIndividualCircleUsed(ctx context.Context, circleID uuid.UUID) (int, error)
	CountIndividualCircleFutureScheduled(ctx context.Context, circleID uuid.UUID) (int, error)
	CountAcademicSubscriptionUsed(ctx context.Context, subscriptionID uuid.UUID) (int, error)
	CountAcademicSubscriptionFutureScheduled(ctx context.Context, subscriptionID uuid.UUID) (int, error)
	CountCourseUsed(ctx context.Context, courseID uuid.UUID) (int, error)
	CountCourseFutureScheduled(ctx context.Context, courseID uuid.UUID) (int, error)
	CountTrialSessions(ctx context.Context, trialRequestID uuid.UUID) (int, error)
	CountGroupCircleMonth(ctx context.Context, circleID uuid.UUID, monthStart time.Time) (int, error)
}

// weeksUntil is the number of whole-or-partial weeks from now to t, never
// below 1 while t is in the future.
func weeksUntil(now, t time.Time) int {
	if !t.After(now) {
		return 0
	}
	days := int(t.Sub(now).Hours() / 24)
	weeks := (days + 6) / 7
	if weeks < 1 {
		weeks = 1
	}
	return weeks
}

// ceilDiv rounds the quotient up.
func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
