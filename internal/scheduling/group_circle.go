package scheduling

import (
	"context"
	"time"

	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/model"
)

// defaultMonthlyTarget applies when a circle has no configured monthly
// session count.
const defaultMonthlyTarget = 8

// groupSessionCountCap is an absolute sanity ceiling; continuous circles
// have no subscription budget to bound a request otherwise.
const groupSessionCountCap = 100

// GroupCircleValidator validates scheduling against a continuous group
// circle. There is no consumable budget; the monthly session count is a
// recurring target used for pacing advisories.
type GroupCircleValidator struct {
	budgetCore
	circle  model.GroupCircle
	counter SessionCounter
	clock   Clock
}

var _ ScheduleValidator = (*GroupCircleValidator)(nil)

func NewGroupCircleValidator(circle model.GroupCircle, counter SessionCounter, clock Clock) *GroupCircleValidator {
	v := &GroupCircleValidator{
		circle:  circle,
		counter: counter,
		clock:   clock,
	}
	v.budgetCore = budgetCore{
		policy: budgetPolicy{
			maxDaysPerWeek:  7,
			dayCapMessage:   msgTooManyDays,
			maxAdvisedDays:  func(rec int) int { return rec + 2 },
			sessionCountCap: groupSessionCountCap,
			// Unreachable while remaining() reports no budget; kept
			// explicit for the policy table.
			overBudgetPacing: KindWarning,
		},
		src:   v,
		clock: clock,
	}
	return v
}

func (v *GroupCircleValidator) monthlyTarget() int {
	if v.circle.MonthlySessionsCount > 0 {
		return v.circle.MonthlySessionsCount
	}
	return defaultMonthlyTarget
}

func (v *GroupCircleValidator) remaining(ctx context.Context) (int, bool, error) {
	return 0, false, nil
}

func (v *GroupCircleValidator) recommendedPerWeek(ctx context.Context, now time.Time) (int, error) {
	return ceilDiv(v.monthlyTarget(), 4), nil
}

func (v *GroupCircleValidator) earliestStart(now time.Time) time.Time { return now }

func (v *GroupCircleValidator) expiry(now time.Time) *time.Time { return nil }

func (v *GroupCircleValidator) gate(now time.Time) Result { return SuccessResult("", nil) }

// ValidateSessionCount layers the monthly-target advisories over the shared
// checks: a request far from the recurring target is suspicious but never
// blocking.
func (v *GroupCircleValidator) ValidateSessionCount(ctx context.Context, count int) (Result, error) {
	res, err := v.budgetCore.ValidateSessionCount(ctx, count)
	if err != nil || !res.IsValid() {
		return res, err
	}

	target := v.monthlyTarget()
	if count*2 < target || count > target*3 {
		return WarningResult(msgCountFarFromTarget(count, target), map[string]any{
			"requested":      count,
			"monthly_target": target,
		}), nil
	}
	return res, nil
}

// ValidateWeeklyPacing compares the plan's total against the monthly target
// projected over the requested horizon.
func (v *GroupCircleValidator) ValidateWeeklyPacing(ctx context.Context, days []time.Weekday, weeksAhead int) (Result, error) {
	days = uniqueDays(days)
	if len(days) == 0 {
		return ErrorResult(msgNoDaysSelected, nil), nil
	}
	if weeksAhead < 1 {
		weeksAhead = 1
	}

	total := len(days) * weeksAhead
	target := v.monthlyTarget()
	// Target projected over the horizon, in months of four weeks.
	expected := target * weeksAhead / 4
	if expected == 0 {
		expected = target
	}

	data := map[string]any{
		"total_to_schedule": total,
		"expected_total":    expected,
		"monthly_target":    target,
	}
	if total*10 > expected*13 {
		return WarningResult(msgPacingAboveTarget(total, expected), data), nil
	}
	if total*2 < expected {
		return WarningResult(msgPacingBelowTarget(total, expected), data), nil
	}
	return SuccessResult(msgPacingValid, nil), nil
}

// ValidateCapacity is specific to group circles: enrollment advisories for
// the teacher before committing a schedule. Never blocking.
func (v *GroupCircleValidator) ValidateCapacity() Result {
	enrolled := v.circle.EnrolledStudentsCount
	max := v.circle.MaxStudents

	switch {
	case enrolled == 0:
		return WarningResult(msgCapacityEmpty, map[string]any{
			"enrolled": 0,
			"max":      max,
		})
	case max > 0 && enrolled*4 < max:
		return WarningResult(msgCapacityLow(enrolled, max), map[string]any{
			"enrolled": enrolled,
			"max":      max,
		})
	case max > 0 && enrolled >= max:
		return SuccessResult(msgCircleFull, map[string]any{
			"enrolled": enrolled,
			"max":      max,
		})
	default:
		return SuccessResult(msgCapacityOK, map[string]any{
			"enrolled": enrolled,
			"max":      max,
		})
	}
}

func (v *GroupCircleValidator) Recommendations(ctx context.Context) (Recommendations, error) {
	rec := ceilDiv(v.monthlyTarget(), 4)
	return Recommendations{
		RecommendedDaysPerWeek: rec,
		MaxDaysPerWeek:         rec + 2,
		Reason:                 recommendationReasonMonthly(v.monthlyTarget(), rec),
	}, nil
}

func (v *GroupCircleValidator) SchedulingStatus(ctx context.Context) (SchedulingStatus, error) {
	now := v.clock.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	scheduled, err := v.counter.CountGroupCircleMonth(ctx, v.circle.ID, monthStart)
	if err != nil {
		return SchedulingStatus{}, err
	}

	target := v.monthlyTarget()
	switch {
	case scheduled == 0:
		return SchedulingStatus{
			State:       StateNotScheduled,
			Message:     "لم تتم جدولة أي جلسات لهذا الشهر",
			Color:       "danger",
			CanSchedule: true,
			Urgent:      true,
		}, nil
	case scheduled*2 < target:
		return SchedulingStatus{
			State:       StatePartiallyScheduled,
			Message:     statusMonthlyProgress(scheduled, target),
			Color:       "warning",
			CanSchedule: true,
		}, nil
	default:
		return SchedulingStatus{
			State:       StateWellScheduled,
			Message:     statusMonthlyProgress(scheduled, target),
			Color:       "success",
			CanSchedule: true,
		}, nil
	}
}

// MaxScheduleDate is nil: group circles are continuous.
func (v *GroupCircleValidator) MaxScheduleDate() *time.Time { return nil }
