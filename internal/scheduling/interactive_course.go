package scheduling

import (
	"context"
	"time"

	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/model"
)

// courseMaxDaysPerWeek is stricter than the other validators' seven-day cap:
// interactive courses run synchronous cohorts and cannot meet more often.
const courseMaxDaysPerWeek = 5

// InteractiveCourseValidator validates scheduling against a curriculum-fixed
// course: the session budget and duration belong to the course itself, not a
// subscription.
type InteractiveCourseValidator struct {
	budgetCore
	course  model.InteractiveCourse
	counter SessionCounter
	clock   Clock
}

var _ ScheduleValidator = (*InteractiveCourseValidator)(nil)

func NewInteractiveCourseValidator(course model.InteractiveCourse, counter SessionCounter, clock Clock) *InteractiveCourseValidator {
	v := &InteractiveCourseValidator{
		course:  course,
		counter: counter,
		clock:   clock,
	}
	v.budgetCore = budgetCore{
		policy: budgetPolicy{
			maxDaysPerWeek: courseMaxDaysPerWeek,
			dayCapMessage:  msgTooManyDaysCourse,
			maxAdvisedDays: func(rec int) int {
				m := rec + 1
				if m > courseMaxDaysPerWeek {
					m = courseMaxDaysPerWeek
				}
				return m
			},
			sessionCountCap:  100,
			overBudgetPacing: KindError,
		},
		src:   v,
		clock: clock,
	}
	return v
}

func (v *InteractiveCourseValidator) remaining(ctx context.Context) (int, bool, error) {
	used, err := v.counter.CountCourseUsed(ctx, v.course.ID)
	if err != nil {
		return 0, false, err
	}
	rem := v.course.TotalSessions - used
	if rem < 0 {
		rem = 0
	}
	return rem, true, nil
}

func (v *InteractiveCourseValidator) recommendedPerWeek(ctx context.Context, now time.Time) (int, error) {
	if v.course.DurationWeeks <= 0 {
		return 0, nil
	}
	return ceilDiv(v.course.TotalSessions, v.course.DurationWeeks), nil
}

func (v *InteractiveCourseValidator) earliestStart(now time.Time) time.Time {
	if v.course.StartDate != nil && v.course.StartDate.After(now) {
		return *v.course.StartDate
	}
	return now
}

func (v *InteractiveCourseValidator) expiry(now time.Time) *time.Time {
	return v.course.EndDate
}

func (v *InteractiveCourseValidator) gate(now time.Time) Result {
	if v.course.EndDate != nil && now.After(*v.course.EndDate) {
		return ErrorResult(msgEndBeyondCourse(*v.course.EndDate), map[string]any{
			"end_date": v.course.EndDate.Format("2006-01-02"),
		})
	}
	return SuccessResult("", nil)
}

// ValidateDateRange adds the course-duration bound on top of the shared
// date checks: planning far beyond the curriculum length is suspect even
// when no explicit end date is stored.
func (v *InteractiveCourseValidator) ValidateDateRange(ctx context.Context, startDate *time.Time, weeksAhead int) (Result, error) {
	res, err := v.budgetCore.ValidateDateRange(ctx, startDate, weeksAhead)
	if err != nil || !res.IsValid() || res.IsWarning() {
		return res, err
	}
	if v.course.DurationWeeks > 0 && weeksAhead*2 > v.course.DurationWeeks*3 {
		return WarningResult(msgWeeksExceedCourseDuration(weeksAhead, v.course.DurationWeeks), map[string]any{
			"weeks_ahead":    weeksAhead,
			"duration_weeks": v.course.DurationWeeks,
		}), nil
	}
	return res, nil
}

func (v *InteractiveCourseValidator) Recommendations(ctx context.Context) (Recommendations, error) {
	now := v.clock.Now()
	rem, _, err := v.remaining(ctx)
	if err != nil {
		return Recommendations{}, err
	}
	rec, err := v.recommendedPerWeek(ctx, now)
	if err != nil {
		return Recommendations{}, err
	}
	maxDays := rec + 1
	if maxDays > courseMaxDaysPerWeek {
		maxDays = courseMaxDaysPerWeek
	}
	weeks := 0
	if v.course.EndDate != nil {
		weeks = weeksUntil(now, *v.course.EndDate)
	} else {
		weeks = v.course.DurationWeeks
	}
	return Recommendations{
		RecommendedDaysPerWeek: rec,
		MaxDaysPerWeek:         maxDays,
		RemainingSessions:      rem,
		WeeksRemaining:         weeks,
		Reason:                 recommendationReason(rem, weeks, rec),
	}, nil
}

func (v *InteractiveCourseValidator) SchedulingStatus(ctx context.Context) (SchedulingStatus, error) {
	now := v.clock.Now()
	if v.course.EndDate != nil && now.After(*v.course.EndDate) {
		return SchedulingStatus{
			State:   StateExpired,
			Message: msgEndBeyondCourse(*v.course.EndDate),
			Color:   "danger",
		}, nil
	}

	rem, _, err := v.remaining(ctx)
	if err != nil {
		return SchedulingStatus{}, err
	}
	future, err := v.counter.CountCourseFutureScheduled(ctx, v.course.ID)
	if err != nil {
		return SchedulingStatus{}, err
	}
	return coverageStatus(rem, future), nil
}

func (v *InteractiveCourseValidator) MaxScheduleDate() *time.Time {
	return v.course.EndDate
}
