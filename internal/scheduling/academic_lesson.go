package scheduling

import (
	"context"
	"time"

	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/model"
)

// AcademicLessonValidator validates scheduling against an academic
// subscription with an explicit end date. Unlike the individual-circle
// validator, over-budget pacing is a hard error here: academic packages are
// never silently capped.
type AcademicLessonValidator struct {
	budgetCore
	sub     model.AcademicSubscription
	counter SessionCounter
	clock   Clock
}

var _ ScheduleValidator = (*AcademicLessonValidator)(nil)

func NewAcademicLessonValidator(
	sub model.AcademicSubscription,
	counter SessionCounter,
	clock Clock,
) *AcademicLessonValidator {
	v := &AcademicLessonValidator{
		sub:     sub,
		counter: counter,
		clock:   clock,
	}
	v.budgetCore = budgetCore{
		policy: budgetPolicy{
			maxDaysPerWeek:   7,
			dayCapMessage:    msgTooManyDays,
			maxAdvisedDays:   func(rec int) int { return ceilDiv(rec*3, 2) },
			sessionCountCap:  50,
			overBudgetPacing: KindError,
		},
		src:   v,
		clock: clock,
	}
	return v
}

func (v *AcademicLessonValidator) remaining(ctx context.Context) (int, bool, error) {
	used, err := v.counter.CountAcademicSubscriptionUsed(ctx, v.sub.ID)
	if err != nil {
		return 0, false, err
	}
	rem := v.sub.TotalSessions - used
	if rem < 0 {
		rem = 0
	}
	return rem, true, nil
}

func (v *AcademicLessonValidator) recommendedPerWeek(ctx context.Context, now time.Time) (int, error) {
	rem, _, err := v.remaining(ctx)
	if err != nil {
		return 0, err
	}
	if rem == 0 {
		return 0, nil
	}
	weeks := weeksUntil(now, v.sub.EndsAt)
	if weeks == 0 {
		weeks = 1
	}
	return ceilDiv(rem, weeks), nil
}

func (v *AcademicLessonValidator) earliestStart(now time.Time) time.Time {
	if v.sub.StartsAt.After(now) {
		return v.sub.StartsAt
	}
	return now
}

func (v *AcademicLessonValidator) expiry(now time.Time) *time.Time {
	exp := v.sub.EndsAt
	return &exp
}

func (v *AcademicLessonValidator) gate(now time.Time) Result {
	if v.sub.Status != model.SubscriptionActive {
		return ErrorResult(msgSubscriptionNotActive, map[string]any{
			"subscription_status": string(v.sub.Status),
		})
	}
	if now.After(v.sub.EndsAt) {
		return ErrorResult(msgSubscriptionExpired, map[string]any{
			"ends_at": v.sub.EndsAt.Format("2006-01-02"),
		})
	}
	return SuccessResult("", nil)
}

func (v *AcademicLessonValidator) Recommendations(ctx context.Context) (Recommendations, error) {
	now := v.clock.Now()
	rem, _, err := v.remaining(ctx)
	if err != nil {
		return Recommendations{}, err
	}
	weeks := weeksUntil(now, v.sub.EndsAt)
	rec := 0
	if rem > 0 && weeks > 0 {
		rec = ceilDiv(rem, weeks)
	}
	return Recommendations{
		RecommendedDaysPerWeek: rec,
		MaxDaysPerWeek:         ceilDiv(rec*3, 2),
		RemainingSessions:      rem,
		WeeksRemaining:         weeks,
		Reason:                 recommendationReason(rem, weeks, rec),
	}, nil
}

func (v *AcademicLessonValidator) SchedulingStatus(ctx context.Context) (SchedulingStatus, error) {
	now := v.clock.Now()
	if v.sub.Status != model.SubscriptionActive {
		return SchedulingStatus{
			State:   StateInactive,
			Message: msgSubscriptionNotActive,
			Color:   "gray",
		}, nil
	}
	if now.After(v.sub.EndsAt) {
		return SchedulingStatus{
			State:   StateExpired,
			Message: msgSubscriptionExpired,
			Color:   "danger",
		}, nil
	}

	rem, _, err := v.remaining(ctx)
	if err != nil {
		return SchedulingStatus{}, err
	}
	future, err := v.counter.CountAcademicSubscriptionFutureScheduled(ctx, v.sub.ID)
	if err != nil {
		return SchedulingStatus{}, err
	}
	return coverageStatus(rem, future), nil
}

func (v *AcademicLessonValidator) MaxScheduleDate() *time.Time {
	exp := v.sub.EndsAt
	return &exp
}
