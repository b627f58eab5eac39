package scheduling

import (
	"context"
	"time"

	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/model"
)

// TrialLeadTime is the minimum notice before a trial session may start. The
// orchestrator applies it again to every concrete slot it expands, since the
// date-range check may only have seen a bare date.
const TrialLeadTime = time.Hour

// TrialSessionValidator handles the simplest entity: a trial request gets
// exactly one session on one day, with a minimum lead time.
type TrialSessionValidator struct {
	trial   model.TrialRequest
	counter SessionCounter
	clock   Clock
}

var _ ScheduleValidator = (*TrialSessionValidator)(nil)

func NewTrialSessionValidator(trial model.TrialRequest, counter SessionCounter, clock Clock) *TrialSessionValidator {
	return &TrialSessionValidator{trial: trial, counter: counter, clock: clock}
}

// ValidateDaySelection errors on an empty selection and warns (never errors)
// beyond one day: only the first selected day is used.
func (v *TrialSessionValidator) ValidateDaySelection(ctx context.Context, days []time.Weekday) (Result, error) {
	days = uniqueDays(days)
	if len(days) == 0 {
		return ErrorResult(msgNoDaysSelected, nil), nil
	}
	if len(days) > 1 {
		return WarningResult(msgTrialSingleDay, map[string]any{
			"selected_days": len(days),
		}), nil
	}
	return SuccessResult(msgDaysValid, nil), nil
}

func (v *TrialSessionValidator) ValidateSessionCount(ctx context.Context, count int) (Result, error) {
	if count <= 0 {
		return ErrorResult(msgCountNotPositive, nil), nil
	}
	if count > 1 {
		return ErrorResult(msgTrialSingleCount, map[string]any{
			"requested": count,
		}), nil
	}
	existing, err := v.counter.CountTrialSessions(ctx, v.trial.ID)
	if err != nil {
		return Result{}, err
	}
	if existing > 0 {
		return ErrorResult(msgTrialAlreadyExists, map[string]any{
			"existing_sessions": existing,
		}), nil
	}
	return SuccessResult(msgCountValid, nil), nil
}

// ValidateDateRange rejects trials in terminal states regardless of the
// requested date, and enforces the one-hour lead time when a concrete start
// is given.
func (v *TrialSessionValidator) ValidateDateRange(ctx context.Context, startDate *time.Time, weeksAhead int) (Result, error) {
	if !v.trial.Status.Schedulable() {
		return ErrorResult(msgTrialNotSchedulable(string(v.trial.Status)), map[string]any{
			"trial_status": string(v.trial.Status),
		}), nil
	}

	now := v.clock.Now()
	if startDate == nil {
		return SuccessResult(msgDateRangeValid, nil), nil
	}
	if startOfDay(*startDate).Before(startOfDay(now)) {
		return ErrorResult(msgStartInPast, map[string]any{
			"requested_start": startDate.Format("2006-01-02"),
		}), nil
	}
	// Only enforce the lead time when the start carries a time of day.
	if !startDate.Equal(startOfDay(*startDate)) && startDate.Before(now.Add(TrialLeadTime)) {
		return ErrorResult(msgTrialLeadTime, map[string]any{
			"requested_start": startDate.Format(time.RFC3339),
		}), nil
	}
	return SuccessResult(msgDateRangeValid, nil), nil
}

func (v *TrialSessionValidator) ValidateWeeklyPacing(ctx context.Context, days []time.Weekday, weeksAhead int) (Result, error) {
	days = uniqueDays(days)
	if len(days) == 0 {
		return ErrorResult(msgNoDaysSelected, nil), nil
	}
	if weeksAhead < 1 {
		weeksAhead = 1
	}
	if len(days)*weeksAhead > 1 {
		return WarningResult(msgTrialSingleDay, map[string]any{
			"total_to_schedule": len(days) * weeksAhead,
		}), nil
	}
	return SuccessResult(msgPacingValid, nil), nil
}

func (v *TrialSessionValidator) Recommendations(ctx context.Context) (Recommendations, error) {
	return Recommendations{
		RecommendedDaysPerWeek: 1,
		MaxDaysPerWeek:         1,
		RemainingSessions:      1,
		Reason:                 "الجلسة التجريبية تُجدول مرة واحدة فقط",
	}, nil
}

func (v *TrialSessionValidator) SchedulingStatus(ctx context.Context) (SchedulingStatus, error) {
	if v.trial.Status == model.TrialCompleted {
		return SchedulingStatus{
			State:   StateCompleted,
			Message: "اكتملت الجلسة التجريبية",
			Color:   "success",
		}, nil
	}

	existing, err := v.counter.CountTrialSessions(ctx, v.trial.ID)
	if err != nil {
		return SchedulingStatus{}, err
	}
	if existing > 0 {
		return SchedulingStatus{
			State:   StateScheduled,
			Message: msgTrialAlreadyExists,
			Color:   "info",
		}, nil
	}
	if !v.trial.Status.Schedulable() {
		return SchedulingStatus{
			State:   StateInactive,
			Message: msgTrialNotSchedulable(string(v.trial.Status)),
			Color:   "gray",
		}, nil
	}
	return SchedulingStatus{
		State:       StateNotScheduled,
		Message:     "الجلسة التجريبية جاهزة للجدولة",
		Color:       "warning",
		CanSchedule: true,
		Urgent:      true,
	}, nil
}

// MaxScheduleDate is nil: nothing bounds when a trial may be placed beyond
// the lead time.
func (v *TrialSessionValidator) MaxScheduleDate() *time.Time { return nil }
