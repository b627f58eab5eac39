package scheduling

import "fmt"

// coverageStatus maps budget coverage to the shared dashboard states for
// subscription- and curriculum-backed entities: how much of the remaining
// budget is already placed on the calendar.
func coverageStatus(remaining, futureScheduled int) SchedulingStatus {
	switch {
	case remaining == 0:
		return SchedulingStatus{
			State:   StateFullyScheduled,
			Message: "تمت جدولة جميع الجلسات المتبقية",
			Color:   "success",
		}
	case futureScheduled == 0:
		return SchedulingStatus{
			State:       StateNotScheduled,
			Message:     fmt.Sprintf("لا توجد جلسات مجدولة، %d جلسة بانتظار الجدولة", remaining),
			Color:       "danger",
			CanSchedule: true,
			Urgent:      true,
		}
	case futureScheduled*2 < remaining:
		return SchedulingStatus{
			State:       StatePartiallyScheduled,
			Message:     fmt.Sprintf("تمت جدولة %d من أصل %d جلسة متبقية", futureScheduled, remaining),
			Color:       "warning",
			CanSchedule: true,
		}
	default:
		return SchedulingStatus{
			State:       StateWellScheduled,
			Message:     fmt.Sprintf("تمت جدولة %d من أصل %d جلسة متبقية", futureScheduled, remaining),
			Color:       "success",
			CanSchedule: true,
		}
	}
}

func recommendationReasonMonthly(monthlyTarget, recommended int) string {
	return fmt.Sprintf("الهدف الشهري للحلقة %d جلسات، ننصح بجدولة %d جلسات أسبوعياً", monthlyTarget, recommended)
}

func statusMonthlyProgress(scheduled, target int) string {
	return fmt.Sprintf("تمت جدولة %d من أصل %d جلسة لهذا الشهر", scheduled, target)
}

func recommendationReason(remaining, weeks, recommended int) string {
	if remaining == 0 {
		return "لا توجد جلسات متبقية للجدولة"
	}
	if weeks == 0 {
		return fmt.Sprintf("لديك %d جلسة متبقية", remaining)
	}
	return fmt.Sprintf("لديك %d جلسة متبقية خلال %d أسابيع، ننصح بجدولة %d جلسات أسبوعياً", remaining, weeks, recommended)
}
