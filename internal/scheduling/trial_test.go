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

func trialRequest(status model.TrialStatus) model.TrialRequest {
	return model.TrialRequest{
		ID:            uuid.New(),
		TeacherUserID: uuid.New(),
		StudentName:   "سارة",
		Status:        status,
	}
}

func TestTrial_SingleDayOnly(t *testing.T) {
	now := mustTime(t, "2025-03-01T12:00:00Z")
	v := scheduling.NewTrialSessionValidator(trialRequest(model.TrialPending), &counterStub{}, scheduling.FixedClock{Instant: now})

	one, err := v.ValidateDaySelection(context.Background(), []time.Weekday{time.Monday})
	require.NoError(t, err)
	require.True(t, one.IsValid())
	require.False(t, one.IsWarning())

	// More than one day is tolerated with a warning: only the first is used.
	two, err := v.ValidateDaySelection(context.Background(), []time.Weekday{time.Monday, time.Thursday})
	require.NoError(t, err)
	require.True(t, two.IsValid())
	require.True(t, two.IsWarning())

	none, err := v.ValidateDaySelection(context.Background(), nil)
	require.NoError(t, err)
	require.True(t, none.IsError())
}

func TestTrial_SingleSessionOnly(t *testing.T) {
	now := mustTime(t, "2025-03-01T12:00:00Z")
	v := scheduling.NewTrialSessionValidator(trialRequest(model.TrialApproved), &counterStub{}, scheduling.FixedClock{Instant: now})

	res, err := v.ValidateSessionCount(context.Background(), 2)
	require.NoError(t, err)
	require.True(t, res.IsError())

	res, err = v.ValidateSessionCount(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, res.IsValid())
}

func TestTrial_AlreadyScheduledBlocks(t *testing.T) {
	now := mustTime(t, "2025-03-01T12:00:00Z")
	counter := &counterStub{trialCount: 1}
	v := scheduling.NewTrialSessionValidator(trialRequest(model.TrialPending), counter, scheduling.FixedClock{Instant: now})

	res, err := v.ValidateSessionCount(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, res.IsError())
}

func TestTrial_LeadTime(t *testing.T) {
	now := mustTime(t, "2025-03-01T12:00:00Z")
	v := scheduling.NewTrialSessionValidator(trialRequest(model.TrialPending), &counterStub{}, scheduling.FixedClock{Instant: now})

	tooSoon := mustTime(t, "2025-03-01T12:30:00Z")
	res, err := v.ValidateDateRange(context.Background(), &tooSoon, 1)
	require.NoError(t, err)
	require.True(t, res.IsError())

	inAnHour := mustTime(t, "2025-03-01T13:00:00Z")
	res, err = v.ValidateDateRange(context.Background(), &inAnHour, 1)
	require.NoError(t, err)
	require.True(t, res.IsValid())

	// A bare date without a time of day is not held to the lead time.
	tomorrow := mustTime(t, "2025-03-02T00:00:00Z")
	res, err = v.ValidateDateRange(context.Background(), &tomorrow, 1)
	require.NoError(t, err)
	require.True(t, res.IsValid())
}

func TestTrial_TerminalStatusBlocksRegardlessOfDate(t *testing.T) {
	now := mustTime(t, "2025-03-01T12:00:00Z")
	future := mustTime(t, "2025-03-10T15:00:00Z")

	for _, status := range []model.TrialStatus{model.TrialCancelled, model.TrialCompleted} {
		v := scheduling.NewTrialSessionValidator(trialRequest(status), &counterStub{}, scheduling.FixedClock{Instant: now})
		res, err := v.ValidateDateRange(context.Background(), &future, 1)
		require.NoError(t, err)
		require.True(t, res.IsError(), string(status))
	}
}

func TestTrial_SchedulingStatus(t *testing.T) {
	now := mustTime(t, "2025-03-01T12:00:00Z")

	t.Run("ready to schedule is urgent", func(t *testing.T) {
		v := scheduling.NewTrialSessionValidator(trialRequest(model.TrialPending), &counterStub{}, scheduling.FixedClock{Instant: now})
		status, err := v.SchedulingStatus(context.Background())
		require.NoError(t, err)
		require.Equal(t, scheduling.StateNotScheduled, status.State)
		require.True(t, status.Urgent)
		require.True(t, status.CanSchedule)
	})

	t.Run("already scheduled", func(t *testing.T) {
		v := scheduling.NewTrialSessionValidator(trialRequest(model.TrialApproved), &counterStub{trialCount: 1}, scheduling.FixedClock{Instant: now})
		status, err := v.SchedulingStatus(context.Background())
		require.NoError(t, err)
		require.Equal(t, scheduling.StateScheduled, status.State)
		require.False(t, status.CanSchedule)
	})

	t.Run("completed", func(t *testing.T) {
		v := scheduling.NewTrialSessionValidator(trialRequest(model.TrialCompleted), &counterStub{}, scheduling.FixedClock{Instant: now})
		status, err := v.SchedulingStatus(context.Background())
		require.NoError(t, err)
		require.Equal(t, scheduling.StateCompleted, status.State)
	})

	t.Run("cancelled is inactive", func(t *testing.T) {
		v := scheduling.NewTrialSessionValidator(trialRequest(model.TrialCancelled), &counterStub{}, scheduling.FixedClock{Instant: now})
		status, err := v.SchedulingStatus(context.Background())
		require.NoError(t, err)
		require.Equal(t, scheduling.StateInactive, status.State)
	})
}
