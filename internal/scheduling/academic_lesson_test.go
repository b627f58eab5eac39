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

func academicSub(total int, startsAt, endsAt time.Time) model.AcademicSubscription {
	return model.AcademicSubscription{
		ID:               uuid.New(),
		StudentID:        uuid.New(),
		TeacherProfileID: uuid.New(),
		TotalSessions:    total,
		StartsAt:         startsAt,
		EndsAt:           endsAt,
		Status:           model.SubscriptionActive,
	}
}

func TestAcademicLesson_OverBudgetPacingIsAnError(t *testing.T) {
	now := mustTime(t, "2025-03-01T12:00:00Z")
	sub := academicSub(20, mustTime(t, "2025-02-01T00:00:00Z"), mustTime(t, "2025-04-01T00:00:00Z"))
	counter := &counterStub{academicUsed: 16}
	v := scheduling.NewAcademicLessonValidator(sub, counter, scheduling.FixedClock{Instant: now})

	// 3 days x 4 weeks = 12 against 4 remaining. Academic packages are never
	// silently capped.
	res, err := v.ValidateWeeklyPacing(context.Background(), []time.Weekday{time.Monday, time.Wednesday, time.Friday}, 4)
	require.NoError(t, err)
	require.True(t, res.IsError())
}

func TestAcademicLesson_CountExceedsRemaining(t *testing.T) {
	now := mustTime(t, "2025-03-01T12:00:00Z")
	sub := academicSub(10, mustTime(t, "2025-02-01T00:00:00Z"), mustTime(t, "2025-04-01T00:00:00Z"))
	counter := &counterStub{academicUsed: 6}
	v := scheduling.NewAcademicLessonValidator(sub, counter, scheduling.FixedClock{Instant: now})

	res, err := v.ValidateSessionCount(context.Background(), 5)
	require.NoError(t, err)
	require.True(t, res.IsError())
	require.Equal(t, "لا يمكن جدولة 5 جلسة. الجلسات المتبقية: 4 فقط", res.Message())

	atEdge, err := v.ValidateSessionCount(context.Background(), 4)
	require.NoError(t, err)
	require.True(t, atEdge.IsValid())
}

func TestAcademicLesson_ExpiredSubscriptionBlocks(t *testing.T) {
	now := mustTime(t, "2025-05-01T12:00:00Z")
	sub := academicSub(20, mustTime(t, "2025-02-01T00:00:00Z"), mustTime(t, "2025-04-01T00:00:00Z"))
	v := scheduling.NewAcademicLessonValidator(sub, &counterStub{}, scheduling.FixedClock{Instant: now})

	res, err := v.ValidateDateRange(context.Background(), nil, 2)
	require.NoError(t, err)
	require.True(t, res.IsError())

	status, err := v.SchedulingStatus(context.Background())
	require.NoError(t, err)
	require.Equal(t, scheduling.StateExpired, status.State)
}

func TestAcademicLesson_InactiveSubscriptionBlocks(t *testing.T) {
	now := mustTime(t, "2025-03-01T12:00:00Z")
	sub := academicSub(20, mustTime(t, "2025-02-01T00:00:00Z"), mustTime(t, "2025-04-01T00:00:00Z"))
	sub.Status = model.SubscriptionCancelled
	v := scheduling.NewAcademicLessonValidator(sub, &counterStub{}, scheduling.FixedClock{Instant: now})

	res, err := v.ValidateDateRange(context.Background(), nil, 2)
	require.NoError(t, err)
	require.True(t, res.IsError())

	status, err := v.SchedulingStatus(context.Background())
	require.NoError(t, err)
	require.Equal(t, scheduling.StateInactive, status.State)
}

func TestAcademicLesson_StartBeforeSubscriptionStart(t *testing.T) {
	now := mustTime(t, "2025-03-01T12:00:00Z")
	sub := academicSub(20, mustTime(t, "2025-03-10T00:00:00Z"), mustTime(t, "2025-05-10T00:00:00Z"))
	v := scheduling.NewAcademicLessonValidator(sub, &counterStub{}, scheduling.FixedClock{Instant: now})

	early := mustTime(t, "2025-03-05T00:00:00Z")
	res, err := v.ValidateDateRange(context.Background(), &early, 2)
	require.NoError(t, err)
	require.True(t, res.IsError())

	onStart := mustTime(t, "2025-03-10T00:00:00Z")
	res, err = v.ValidateDateRange(context.Background(), &onStart, 2)
	require.NoError(t, err)
	require.True(t, res.IsValid())
}

func TestAcademicLesson_EndBeyondExpiryWarns(t *testing.T) {
	now := mustTime(t, "2025-03-01T12:00:00Z")
	sub := academicSub(20, mustTime(t, "2025-02-01T00:00:00Z"), mustTime(t, "2025-03-20T00:00:00Z"))
	v := scheduling.NewAcademicLessonValidator(sub, &counterStub{}, scheduling.FixedClock{Instant: now})

	res, err := v.ValidateDateRange(context.Background(), nil, 6)
	require.NoError(t, err)
	require.True(t, res.IsValid())
	require.True(t, res.IsWarning())
}

func TestAcademicLesson_Recommendations(t *testing.T) {
	now := mustTime(t, "2025-03-01T12:00:00Z")
	// 8 remaining over roughly 4 weeks: two sessions a week.
	sub := academicSub(12, mustTime(t, "2025-02-01T00:00:00Z"), mustTime(t, "2025-03-29T00:00:00Z"))
	counter := &counterStub{academicUsed: 4}
	v := scheduling.NewAcademicLessonValidator(sub, counter, scheduling.FixedClock{Instant: now})

	rec, err := v.Recommendations(context.Background())
	require.NoError(t, err)
	require.Equal(t, 8, rec.RemainingSessions)
	require.Equal(t, 2, rec.RecommendedDaysPerWeek)
	require.Equal(t, 4, rec.WeeksRemaining)
}
