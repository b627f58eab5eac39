package scheduling_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/model"
	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/scheduling"
)

func interactiveCourse(total, weeks int) model.InteractiveCourse {
	return model.InteractiveCourse{
		ID:               uuid.New(),
		TeacherProfileID: uuid.New(),
		TeacherUserID:    uuid.New(),
		NameAr:           "دورة التجويد",
		TotalSessions:    total,
		DurationWeeks:    weeks,
	}
}

func TestInteractiveCourse_FiveDayCap(t *testing.T) {
	now := mustTime(t, "2025-03-01T12:00:00Z")
	v := scheduling.NewInteractiveCourseValidator(interactiveCourse(20, 10), &counterStub{}, scheduling.FixedClock{Instant: now})

	six := []time.Weekday{time.Saturday, time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday}
	res, err := v.ValidateDaySelection(context.Background(), six)
	require.NoError(t, err)
	require.True(t, res.IsError())

	five := six[:5]
	res, err = v.ValidateDaySelection(context.Background(), five)
	require.NoError(t, err)
	require.True(t, res.IsValid())
}

func TestInteractiveCourse_OverBudgetPacingIsAnError(t *testing.T) {
	now := mustTime(t, "2025-03-01T12:00:00Z")
	counter := &counterStub{courseUsed: 16}
	v := scheduling.NewInteractiveCourseValidator(interactiveCourse(20, 10), counter, scheduling.FixedClock{Instant: now})

	// 3 days x 2 weeks = 6 against 4 remaining.
	res, err := v.ValidateWeeklyPacing(context.Background(), []time.Weekday{time.Monday, time.Wednesday, time.Friday}, 2)
	require.NoError(t, err)
	require.True(t, res.IsError())
}

func TestInteractiveCourse_HorizonBeyondDurationWarns(t *testing.T) {
	now := mustTime(t, "2025-03-01T12:00:00Z")
	v := scheduling.NewInteractiveCourseValidator(interactiveCourse(8, 4), &counterStub{}, scheduling.FixedClock{Instant: now})

	res, err := v.ValidateDateRange(context.Background(), nil, 8)
	require.NoError(t, err)
	require.True(t, res.IsValid())
	require.True(t, res.IsWarning())

	res, err = v.ValidateDateRange(context.Background(), nil, 4)
	require.NoError(t, err)
	require.False(t, res.IsWarning())
}

func TestInteractiveCourse_StartBeforeCourseStart(t *testing.T) {
	now := mustTime(t, "2025-03-01T12:00:00Z")
	course := interactiveCourse(20, 10)
	start := mustTime(t, "2025-03-15T00:00:00Z")
	course.StartDate = &start
	v := scheduling.NewInteractiveCourseValidator(course, &counterStub{}, scheduling.FixedClock{Instant: now})

	early := mustTime(t, "2025-03-10T00:00:00Z")
	res, err := v.ValidateDateRange(context.Background(), &early, 2)
	require.NoError(t, err)
	require.True(t, res.IsError())
}

func TestInteractiveCourse_EndedCourseBlocks(t *testing.T) {
	now := mustTime(t, "2025-06-01T12:00:00Z")
	course := interactiveCourse(20, 10)
	end := mustTime(t, "2025-05-01T00:00:00Z")
	course.EndDate = &end
	v := scheduling.NewInteractiveCourseValidator(course, &counterStub{}, scheduling.FixedClock{Instant: now})

	res, err := v.ValidateDateRange(context.Background(), nil, 2)
	require.NoError(t, err)
	require.True(t, res.IsError())

	status, err := v.SchedulingStatus(context.Background())
	require.NoError(t, err)
	require.Equal(t, scheduling.StateExpired, status.State)
}

func TestInteractiveCourse_CountExceedsCurriculum(t *testing.T) {
	now := mustTime(t, "2025-03-01T12:00:00Z")
	counter := &counterStub{courseUsed: 18}
	v := scheduling.NewInteractiveCourseValidator(interactiveCourse(20, 10), counter, scheduling.FixedClock{Instant: now})

	res, err := v.ValidateSessionCount(context.Background(), 3)
	require.NoError(t, err)
	require.True(t, res.IsError())

	res, err = v.ValidateSessionCount(context.Background(), 2)
	require.NoError(t, err)
	require.True(t, res.IsValid())
}

func TestInteractiveCourse_RecommendationsFromCurriculum(t *testing.T) {
	now := mustTime(t, "2025-03-01T12:00:00Z")
	v := scheduling.NewInteractiveCourseValidator(interactiveCourse(20, 10), &counterStub{}, scheduling.FixedClock{Instant: now})

	rec, err := v.Recommendations(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, rec.RecommendedDaysPerWeek)
	require.Equal(t, 3, rec.MaxDaysPerWeek)
	require.Equal(t, 20, rec.RemainingSessions)
}
