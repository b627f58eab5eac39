package scheduling

import (
	"context"
	"time"
)

// budgetPolicy holds the per-entity knobs of the shared validation core.
// The five validators differ only in these values plus their entity gates;
// the documented behavioural differences (e.g. individual circles warn where
// academic lessons error on the same over-budget pacing) are policy choices,
// not bugs, and live here explicitly.
type budgetPolicy struct {
	maxDaysPerWeek   int               // hard cap on selected days
	dayCapMessage    string            // error text when the cap is exceeded
	maxAdvisedDays   func(rec int) int // advisory ceiling given the recommended rate
	sessionCountCap  int               // absolute sanity ceiling on a single request
	overBudgetPacing ResultKind        // KindError or KindWarning when total exceeds remaining
}

// budgetSource is what a concrete validator feeds the shared core.
type budgetSource interface {
	// remaining session budget. hasBudget is false for continuous entities
	// (group circles), which have a recurring target instead.
	remaining(ctx context.Context) (n int, hasBudget bool, err error)

	// recommendedPerWeek is the advisory weekly rate; 0 means no
	// recommendation applies.
	recommendedPerWeek(ctx context.Context, now time.Time) (int, error)

	// earliestStart is the first allowed scheduling date (inclusive).
	earliestStart(now time.Time) time.Time

	// expiry is the entity's natural end date; nil means unbounded.
	expiry(now time.Time) *time.Time

	// gate rejects entities that cannot be scheduled at all (inactive or
	// expired subscriptions, terminal trials). Success when schedulable.
	gate(now time.Time) Result
}

// budgetCore implements the four validate methods generically over a
// budgetSource and a budgetPolicy.
type budgetCore struct {
	policy budgetPolicy
	src    budgetSource
	clock  Clock
}

func (c budgetCore) ValidateDaySelection(ctx context.Context, days []time.Weekday) (Result, error) {
	days = uniqueDays(days)
	if len(days) == 0 {
		return ErrorResult(msgNoDaysSelected, nil), nil
	}
	if len(days) > c.policy.maxDaysPerWeek {
		return ErrorResult(c.policy.dayCapMessage, map[string]any{
			"selected_days": len(days),
			"max_days":      c.policy.maxDaysPerWeek,
		}), nil
	}

	now := c.clock.Now()
	rec, err := c.src.recommendedPerWeek(ctx, now)
	if err != nil {
		return Result{}, err
	}
	if rec > 0 && len(days) > c.policy.maxAdvisedDays(rec) {
		return WarningResult(msgDaysExceedRecommended(len(days), rec), map[string]any{
			"selected_days":    len(days),
			"recommended_days": rec,
		}), nil
	}

	return SuccessResult(msgDaysValid, nil), nil
}

func (c budgetCore) ValidateSessionCount(ctx context.Context, count int) (Result, error) {
	if count <= 0 {
		return ErrorResult(msgCountNotPositive, nil), nil
	}
	if count > c.policy.sessionCountCap {
		return ErrorResult(msgCountExceedsCap(c.policy.sessionCountCap), map[string]any{
			"requested": count,
			"max":       c.policy.sessionCountCap,
		}), nil
	}

	rem, hasBudget, err := c.src.remaining(ctx)
	if err != nil {
		return Result{}, err
	}
	if hasBudget {
		if count > rem {
			return ErrorResult(msgCountExceedsRemaining(count, rem), map[string]any{
				"requested": count,
				"remaining": rem,
			}), nil
		}
		// A request far below the remaining budget is usually a typo.
		if rem >= 8 && count*4 <= rem {
			return WarningResult(msgCountLow(count, rem), map[string]any{
				"requested": count,
				"remaining": rem,
			}), nil
		}
	}

	return SuccessResult(msgCountValid, nil), nil
}

func (c budgetCore) ValidateDateRange(ctx context.Context, startDate *time.Time, weeksAhead int) (Result, error) {
	now := c.clock.Now()
	if g := c.src.gate(now); g.IsError() {
		return g, nil
	}

	today := startOfDay(now)
	start := today
	if startDate != nil {
		start = startOfDay(*startDate)
	}
	if start.Before(today) {
		return ErrorResult(msgStartInPast, map[string]any{
			"requested_start": start.Format("2006-01-02"),
		}), nil
	}
	if earliest := startOfDay(c.src.earliestStart(now)); start.Before(earliest) {
		return ErrorResult(msgStartBeforeEarliest(earliest), map[string]any{
			"requested_start": start.Format("2006-01-02"),
			"earliest":        earliest.Format("2006-01-02"),
		}), nil
	}

	if weeksAhead < 1 {
		weeksAhead = 1
	}
	end := start.AddDate(0, 0, weeksAhead*7)
	if exp := c.src.expiry(now); exp != nil && end.After(*exp) {
		return WarningResult(msgEndBeyondExpiry(*exp), map[string]any{
			"requested_end": end.Format("2006-01-02"),
			"expiry":        exp.Format("2006-01-02"),
		}), nil
	}

	return SuccessResult(msgDateRangeValid, nil), nil
}

func (c budgetCore) ValidateWeeklyPacing(ctx context.Context, days []time.Weekday, weeksAhead int) (Result, error) {
	days = uniqueDays(days)
	if len(days) == 0 {
		return ErrorResult(msgNoDaysSelected, nil), nil
	}
	if weeksAhead < 1 {
		weeksAhead = 1
	}
	total := len(days) * weeksAhead

	now := c.clock.Now()
	rem, hasBudget, err := c.src.remaining(ctx)
	if err != nil {
		return Result{}, err
	}

	if hasBudget && total > rem {
		data := map[string]any{
			"total_to_schedule": total,
			"remaining":         rem,
		}
		if c.policy.overBudgetPacing == KindError {
			return ErrorResult(msgPacingOverBudget(total, rem), data), nil
		}
		// Policy for this entity is to silently cap to the available
		// sessions and distribute them; surface that as a notice only.
		return WarningResult(msgPacingCapped(total, rem), data), nil
	}

	rec, err := c.src.recommendedPerWeek(ctx, now)
	if err != nil {
		return Result{}, err
	}
	if rec > 0 && len(days) > ceilDiv(rec*3, 2) {
		return WarningResult(msgPacingAggressive, map[string]any{
			"weekly_rate": len(days),
			"recommended": rec,
		}), nil
	}

	if hasBudget {
		if exp := c.src.expiry(now); exp != nil {
			weeksLeft := weeksUntil(now, *exp)
			if weeksLeft > 0 && len(days)*weeksLeft < rem {
				return WarningResult(msgPacingTooSlow(rem, *exp), map[string]any{
					"weekly_rate":     len(days),
					"remaining":       rem,
					"weeks_to_expiry": weeksLeft,
				}), nil
			}
		}
	}

	return SuccessResult(msgPacingValid, nil), nil
}
