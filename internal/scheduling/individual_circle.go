package scheduling

import (
	"context"
	"time"

	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/model"
)

// fallbackHorizonWeeks is the assumed scheduling horizon when the linked
// subscription record cannot be resolved (soft-deleted on renewal) and the
// circle's cached totals are all we have.
const fallbackHorizonWeeks = 12

// IndividualCircleValidator validates scheduling against a subscription-
// backed individual circle. The subscription may be nil: scheduling must
// keep working off the circle's cached total_sessions rather than erroring.
type IndividualCircleValidator struct {
	budgetCore
	circle  model.IndividualCircle
	sub     *model.QuranSubscription
	counter SessionCounter
	clock   Clock
}

var _ ScheduleValidator = (*IndividualCircleValidator)(nil)

func NewIndividualCircleValidator(
	circle model.IndividualCircle,
	sub *model.QuranSubscription,
	counter SessionCounter,
	clock Clock,
) *IndividualCircleValidator {
	v := &IndividualCircleValidator{
		circle:  circle,
		sub:     sub,
		counter: counter,
		clock:   clock,
	}
	v.budgetCore = budgetCore{
		policy: budgetPolicy{
			maxDaysPerWeek:  7,
			dayCapMessage:   msgTooManyDays,
			maxAdvisedDays:  func(rec int) int { return ceilDiv(rec*3, 2) },
			sessionCountCap: 50,
			// Over-budget pacing is a warning here, not an error: the
			// orchestrator caps the request to the available sessions and
			// distributes them.
			overBudgetPacing: KindWarning,
		},
		src:   v,
		clock: clock,
	}
	return v
}

func (v *IndividualCircleValidator) totalSessions() int {
	if v.sub != nil {
		return v.sub.TotalSessions
	}
	return v.circle.TotalSessions
}

func (v *IndividualCircleValidator) remaining(ctx context.Context) (int, bool, error) {
	used, err := v.counter.CountIndividualCircleUsed(ctx, v.circle.ID)
	if err != nil {
		return 0, false, err
	}
	rem := v.totalSessions() - used
	if rem < 0 {
		rem = 0
	}
	return rem, true, nil
}

func (v *IndividualCircleValidator) recommendedPerWeek(ctx context.Context, now time.Time) (int, error) {
	rem, _, err := v.remaining(ctx)
	if err != nil {
		return 0, err
	}
	if rem == 0 {
		return 0, nil
	}
	exp := v.expiryDate(now)
	weeks := weeksUntil(now, exp)
	if weeks == 0 {
		weeks = 1
	}
	return ceilDiv(rem, weeks), nil
}

func (v *IndividualCircleValidator) earliestStart(now time.Time) time.Time {
	if v.sub != nil && v.sub.StartsAt.After(now) {
		return v.sub.StartsAt
	}
	return now
}

func (v *IndividualCircleValidator) expiry(now time.Time) *time.Time {
	exp := v.expiryDate(now)
	return &exp
}

// expiryDate derives the end date from the billing cycle; there is no stored
// expiry field on the subscription.
func (v *IndividualCircleValidator) expiryDate(now time.Time) time.Time {
	if v.sub != nil {
		return v.sub.EndsAt()
	}
	return now.AddDate(0, 0, fallbackHorizonWeeks*7)
}

func (v *IndividualCircleValidator) gate(now time.Time) Result {
	if v.sub != nil && v.sub.Status != model.SubscriptionActive {
		return ErrorResult(msgSubscriptionNotActive, map[string]any{
			"subscription_status": string(v.sub.Status),
		})
	}
	return SuccessResult("", nil)
}

func (v *IndividualCircleValidator) Recommendations(ctx context.Context) (Recommendations, error) {
	now := v.clock.Now()
	rem, _, err := v.remaining(ctx)
	if err != nil {
		return Recommendations{}, err
	}
	exp := v.expiryDate(now)
	weeks := weeksUntil(now, exp)
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

func (v *IndividualCircleValidator) SchedulingStatus(ctx context.Context) (SchedulingStatus, error) {
	now := v.clock.Now()
	if v.sub != nil && v.sub.Status != model.SubscriptionActive {
		return SchedulingStatus{
			State:   StateInactive,
			Message: msgSubscriptionNotActive,
			Color:   "gray",
		}, nil
	}
	if exp := v.expiryDate(now); exp.Before(now) {
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
	future, err := v.counter.CountIndividualCircleFutureScheduled(ctx, v.circle.ID)
	if err != nil {
		return SchedulingStatus{}, err
	}
	return coverageStatus(rem, future), nil
}

func (v *IndividualCircleValidator) MaxScheduleDate() *time.Time {
	exp := v.expiryDate(v.clock.Now())
	return &exp
}
