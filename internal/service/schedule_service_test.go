package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/events"
	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/model"
	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/scheduling"
)

// stubSessions fakes the session repository: fixed counts, an in-memory
// overlap store, and id-assigning batch inserts.
type stubSessions struct {
	individualUsed int
	trialCount     int
	groupMonth     int

	existing map[scheduling.SessionCategory][]scheduling.SessionRef

	createdQuran    []model.QuranSession
	createdAcademic []model.AcademicSession
	createdCourse   []model.CourseSession

	lockCalls   int
	unlockCalls int
	onLock      func()
}

func (s *stubSessions) FindOverlapping(
	_ context.Context,
	category scheduling.SessionCategory,
	_ uuid.UUID,
	window scheduling.Window,
	excludeID uuid.UUID,
) (*scheduling.SessionRef, error) {
	for _, ref := range s.existing[category] {
		if ref.ID == excludeID || ref.Status == "cancelled" {
			continue
		}
		if scheduling.Overlaps(window, ref.ScheduledAt, ref.DurationMinutes) {
			hit := ref
			return &hit, nil
		}
	}
	return nil, nil
}

func (s *stubSessions) CountIndividualCircleUsed(context.Context, uuid.UUID) (int, error) {
	return s.individualUsed, nil
}
func (s *stubSessions) CountIndividualCircleFutureScheduled(context.Context, uuid.UUID) (int, error) {
	return 0, nil
}
func (s *stubSessions) CountAcademicSubscriptionUsed(context.Context, uuid.UUID) (int, error) {
	return 0, nil
}
func (s *stubSessions) CountAcademicSubscriptionFutureScheduled(context.Context, uuid.UUID) (int, error) {
	return 0, nil
}
func (s *stubSessions) CountCourseUsed(context.Context, uuid.UUID) (int, error) { return 0, nil }
func (s *stubSessions) CountCourseFutureScheduled(context.Context, uuid.UUID) (int, error) {
	return 0, nil
}
func (s *stubSessions) CountTrialSessions(context.Context, uuid.UUID) (int, error) {
	return s.trialCount, nil
}
func (s *stubSessions) CountGroupCircleMonth(context.Context, uuid.UUID, time.Time) (int, error) {
	return s.groupMonth, nil
}

func (s *stubSessions) AcquireTeacherLock(context.Context, uuid.UUID) (func(), error) {
	s.lockCalls++
	if s.onLock != nil {
		s.onLock()
	}
	return func() { s.unlockCalls++ }, nil
}

func (s *stubSessions) CreateQuranBatch(_ context.Context, _ uuid.UUID, sessions []model.QuranSession) ([]model.QuranSession, error) {
	for i := range sessions {
		sessions[i].ID = uuid.New()
		sessions[i].CreatedAt = time.Now()
	}
	s.createdQuran = append(s.createdQuran, sessions...)
	return sessions, nil
}

func (s *stubSessions) CreateAcademicBatch(_ context.Context, _ uuid.UUID, sessions []model.AcademicSession) ([]model.AcademicSession, error) {
	for i := range sessions {
		sessions[i].ID = uuid.New()
		sessions[i].CreatedAt = time.Now()
	}
	s.createdAcademic = append(s.createdAcademic, sessions...)
	return sessions, nil
}

func (s *stubSessions) CreateCourseBatch(_ context.Context, _ uuid.UUID, sessions []model.CourseSession) ([]model.CourseSession, error) {
	for i := range sessions {
		sessions[i].ID = uuid.New()
		sessions[i].CreatedAt = time.Now()
	}
	s.createdCourse = append(s.createdCourse, sessions...)
	return sessions, nil
}

type stubCircles struct {
	group      *model.GroupCircle
	individual *model.IndividualCircle
}

func (s *stubCircles) FindGroupByID(context.Context, uuid.UUID) (*model.GroupCircle, error) {
	return s.group, nil
}
func (s *stubCircles) FindIndividualByID(context.Context, uuid.UUID) (*model.IndividualCircle, error) {
	return s.individual, nil
}

type stubSubs struct {
	quran    *model.QuranSubscription
	academic *model.AcademicSubscription
}

func (s *stubSubs) FindQuranByID(context.Context, uuid.UUID) (*model.QuranSubscription, error) {
	return s.quran, nil
}
func (s *stubSubs) FindAcademicByID(context.Context, uuid.UUID) (*model.AcademicSubscription, error) {
	return s.academic, nil
}

type stubCourses struct{ course *model.InteractiveCourse }

func (s *stubCourses) FindByID(context.Context, uuid.UUID) (*model.InteractiveCourse, error) {
	return s.course, nil
}

type stubTrials struct{ trial *model.TrialRequest }

func (s *stubTrials) FindByID(context.Context, uuid.UUID) (*model.TrialRequest, error) {
	return s.trial, nil
}

type stubProfiles struct {
	profile *model.TeacherProfile
}

func (s *stubProfiles) FindByID(context.Context, uuid.UUID) (*model.TeacherProfile, error) {
	return s.profile, nil
}
func (s *stubProfiles) ResolveTeacherProfileID(context.Context, uuid.UUID) (*uuid.UUID, error) {
	if s.profile == nil {
		return nil, nil
	}
	id := s.profile.ID
	return &id, nil
}

type noopPublisher struct{}

func (noopPublisher) PublishSessionScheduled(events.SessionScheduledEvent) error { return nil }
func (noopPublisher) PublishBulkScheduleCompleted(events.BulkScheduleCompletedEvent) error {
	return nil
}

func newTestService(sessions *stubSessions, circles *stubCircles, now time.Time) ScheduleService {
	clock := scheduling.FixedClock{Instant: now}
	profiles := &stubProfiles{}
	detector := scheduling.NewConflictDetector(sessions, profiles, clock, 5)
	return NewScheduleService(
		sessions, circles, &stubSubs{}, &stubCourses{}, &stubTrials{}, profiles,
		detector, noopPublisher{}, clock,
	)
}

func testIndividualCircle(teacher uuid.UUID, total int) *model.IndividualCircle {
	return &model.IndividualCircle{
		ID:                 uuid.New(),
		TeacherUserID:      teacher,
		StudentID:          uuid.New(),
		TotalSessions:      total,
		SessionDurationMin: 60,
		StudentName:        "خالد",
	}
}

func TestWeeksFor(t *testing.T) {
	require.Equal(t, 2, weeksFor(4, 2))
	require.Equal(t, 3, weeksFor(5, 2))
	require.Equal(t, 1, weeksFor(2, 3))
	require.Equal(t, 1, weeksFor(0, 2))
	require.Equal(t, 1, weeksFor(4, 0))
}

func TestExpandSlots(t *testing.T) {
	// Saturday morning.
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	t.Run("chronological across weeks", func(t *testing.T) {
		req := PlanRequest{
			Days:     []time.Weekday{time.Wednesday, time.Monday},
			TimeHour: 10,
		}
		slots := expandSlots(now, req, 4, nil)
		require.Len(t, slots, 4)
		require.Equal(t, time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC), slots[0])
		require.Equal(t, time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC), slots[1])
		require.Equal(t, time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), slots[2])
		require.Equal(t, time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC), slots[3])
	})

	t.Run("same-day slot earlier than now is dropped", func(t *testing.T) {
		req := PlanRequest{
			Days:     []time.Weekday{time.Saturday},
			TimeHour: 7,
		}
		slots := expandSlots(now, req, 1, nil)
		require.Empty(t, slots)
	})

	t.Run("max date bounds the expansion", func(t *testing.T) {
		maxDate := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
		req := PlanRequest{
			Days:     []time.Weekday{time.Monday},
			TimeHour: 10,
		}
		slots := expandSlots(now, req, 3, &maxDate)
		require.Len(t, slots, 1)
		require.Equal(t, time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC), slots[0])
	})

	t.Run("explicit start date anchors the first week", func(t *testing.T) {
		start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		req := PlanRequest{
			Days:      []time.Weekday{time.Monday},
			StartDate: &start,
			TimeHour:  10,
		}
		slots := expandSlots(now, req, 1, nil)
		require.Len(t, slots, 1)
		require.Equal(t, time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), slots[0])
	})
}

func TestBulkSchedule_IndividualCircle(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	teacher := uuid.New()
	circle := testIndividualCircle(teacher, 8)
	sessions := &stubSessions{existing: map[scheduling.SessionCategory][]scheduling.SessionRef{}}
	svc := newTestService(sessions, &stubCircles{individual: circle}, now)

	result, err := svc.BulkSchedule(context.Background(), PlanRequest{
		EntityType:   EntityIndividualCircle,
		EntityID:     circle.ID,
		Days:         []time.Weekday{time.Monday, time.Wednesday},
		SessionCount: 4,
		TimeHour:     10,
	})
	require.NoError(t, err)
	require.True(t, result.Report.Valid)
	require.Len(t, result.Created, 4)
	require.Empty(t, result.Skipped)
	require.Len(t, sessions.createdQuran, 4)

	for _, created := range result.Created {
		require.Regexp(t, `^IND-[0-9A-F]{8}$`, created.SessionCode)
	}
	for _, sess := range sessions.createdQuran {
		require.Equal(t, model.QuranSessionIndividual, sess.SessionType)
		require.Equal(t, circle.ID, *sess.IndividualCircleID)
		require.Equal(t, model.SessionStatusScheduled, sess.Status)
		require.Equal(t, 60, sess.DurationMinutes)
	}
}

func TestBulkSchedule_SkipsConflictingSlots(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	teacher := uuid.New()
	circle := testIndividualCircle(teacher, 8)
	sessions := &stubSessions{existing: map[scheduling.SessionCategory][]scheduling.SessionRef{
		scheduling.CategoryQuran: {{
			ID:              uuid.New(),
			ScheduledAt:     time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC),
			DurationMinutes: 60,
			Status:          "scheduled",
		}},
	}}
	svc := newTestService(sessions, &stubCircles{individual: circle}, now)

	result, err := svc.BulkSchedule(context.Background(), PlanRequest{
		EntityType:   EntityIndividualCircle,
		EntityID:     circle.ID,
		Days:         []time.Weekday{time.Monday, time.Wednesday},
		SessionCount: 4,
		TimeHour:     10,
	})
	require.NoError(t, err)
	require.Len(t, result.Created, 3)
	require.Len(t, result.Skipped, 1)
	require.Equal(t, time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC), result.Skipped[0].At)
}

func TestBulkSchedule_InvalidPlanDoesNotWrite(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	teacher := uuid.New()
	circle := testIndividualCircle(teacher, 8)
	sessions := &stubSessions{
		individualUsed: 5,
		existing:       map[scheduling.SessionCategory][]scheduling.SessionRef{},
	}
	svc := newTestService(sessions, &stubCircles{individual: circle}, now)

	// 6 requested with only 3 remaining.
	result, err := svc.BulkSchedule(context.Background(), PlanRequest{
		EntityType:   EntityIndividualCircle,
		EntityID:     circle.ID,
		Days:         []time.Weekday{time.Monday, time.Wednesday},
		SessionCount: 6,
		TimeHour:     10,
	})
	require.ErrorIs(t, err, ErrPlanInvalid)
	require.False(t, result.Report.Valid)
	require.Empty(t, sessions.createdQuran)

	last := result.Report.Steps[len(result.Report.Steps)-1]
	require.Equal(t, "session_count", last.Step)
	require.Equal(t, "error", last.Status)
}

func TestBulkSchedule_Trial(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	teacher := uuid.New()
	trial := &model.TrialRequest{
		ID:            uuid.New(),
		TeacherUserID: teacher,
		StudentName:   "سارة",
		Status:        model.TrialPending,
	}
	sessions := &stubSessions{existing: map[scheduling.SessionCategory][]scheduling.SessionRef{}}
	clock := scheduling.FixedClock{Instant: now}
	profiles := &stubProfiles{}
	detector := scheduling.NewConflictDetector(sessions, profiles, clock, 5)
	svc := NewScheduleService(
		sessions, &stubCircles{}, &stubSubs{}, &stubCourses{}, &stubTrials{trial: trial}, profiles,
		detector, noopPublisher{}, clock,
	)

	result, err := svc.BulkSchedule(context.Background(), PlanRequest{
		EntityType:   EntityTrial,
		EntityID:     trial.ID,
		Days:         []time.Weekday{time.Monday},
		SessionCount: 1,
		TimeHour:     17,
	})
	require.NoError(t, err)
	require.Len(t, result.Created, 1)
	require.Len(t, sessions.createdQuran, 1)
	require.Equal(t, model.QuranSessionTrial, sessions.createdQuran[0].SessionType)
	require.Equal(t, trial.ID, *sessions.createdQuran[0].TrialRequestID)
	require.Equal(t, 30, sessions.createdQuran[0].DurationMinutes)
}

func TestBulkSchedule_TrialSlotInsideLeadTimeIsSkipped(t *testing.T) {
	// Saturday 08:00: a bare-date request expands to a concrete slot on the
	// same morning, which must still respect the one-hour notice.
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	teacher := uuid.New()
	trial := &model.TrialRequest{
		ID:            uuid.New(),
		TeacherUserID: teacher,
		StudentName:   "سارة",
		Status:        model.TrialPending,
	}
	sessions := &stubSessions{existing: map[scheduling.SessionCategory][]scheduling.SessionRef{}}
	clock := scheduling.FixedClock{Instant: now}
	profiles := &stubProfiles{}
	detector := scheduling.NewConflictDetector(sessions, profiles, clock, 5)
	svc := NewScheduleService(
		sessions, &stubCircles{}, &stubSubs{}, &stubCourses{}, &stubTrials{trial: trial}, profiles,
		detector, noopPublisher{}, clock,
	)

	// 08:30 is thirty minutes out: inside the lead time.
	result, err := svc.BulkSchedule(context.Background(), PlanRequest{
		EntityType:   EntityTrial,
		EntityID:     trial.ID,
		Days:         []time.Weekday{time.Saturday},
		SessionCount: 1,
		TimeHour:     8,
		TimeMinute:   30,
	})
	require.ErrorIs(t, err, ErrNoSchedulableSlot)
	require.True(t, result.Report.Valid)
	require.Empty(t, result.Created)
	require.Empty(t, sessions.createdQuran)
	require.Len(t, result.Skipped, 1)
	require.Equal(t, "lead_time", result.Skipped[0].Reason)
	require.Equal(t, time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC), result.Skipped[0].At)

	// 09:00 is exactly one hour out: allowed.
	result, err = svc.BulkSchedule(context.Background(), PlanRequest{
		EntityType:   EntityTrial,
		EntityID:     trial.ID,
		Days:         []time.Weekday{time.Saturday},
		SessionCount: 1,
		TimeHour:     9,
	})
	require.NoError(t, err)
	require.Len(t, result.Created, 1)
	require.Equal(t, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), result.Created[0].ScheduledAt)
}

func TestBulkSchedule_CapsToBudgetConsumedConcurrently(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	teacher := uuid.New()
	circle := testIndividualCircle(teacher, 8)
	sessions := &stubSessions{
		individualUsed: 4,
		existing:       map[scheduling.SessionCategory][]scheduling.SessionRef{},
	}
	// Another run commits between validation and lock acquisition, leaving
	// only 2 of the 4 validated sessions in the budget.
	sessions.onLock = func() { sessions.individualUsed = 6 }
	svc := newTestService(sessions, &stubCircles{individual: circle}, now)

	result, err := svc.BulkSchedule(context.Background(), PlanRequest{
		EntityType:   EntityIndividualCircle,
		EntityID:     circle.ID,
		Days:         []time.Weekday{time.Monday, time.Wednesday},
		SessionCount: 4,
		TimeHour:     10,
	})
	require.NoError(t, err)
	require.True(t, result.Capped)
	require.Equal(t, 4, result.Requested)
	require.Len(t, result.Created, 2)
	require.Len(t, sessions.createdQuran, 2)
	require.Equal(t, 1, sessions.lockCalls)
	require.Equal(t, 1, sessions.unlockCalls)
}

func TestValidatePlan_GroupCircleIncludesCapacity(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	circle := &model.GroupCircle{
		ID:                    uuid.New(),
		TeacherUserID:         uuid.New(),
		NameAr:                "حلقة الفجر",
		MonthlySessionsCount:  8,
		MaxStudents:           20,
		EnrolledStudentsCount: 2,
	}
	sessions := &stubSessions{existing: map[scheduling.SessionCategory][]scheduling.SessionRef{}}
	svc := newTestService(sessions, &stubCircles{group: circle}, now)

	report, err := svc.ValidatePlan(context.Background(), PlanRequest{
		EntityType:   EntityGroupCircle,
		EntityID:     circle.ID,
		Days:         []time.Weekday{time.Saturday, time.Wednesday},
		SessionCount: 8,
		TimeHour:     18,
	})
	require.NoError(t, err)
	require.True(t, report.Valid)

	last := report.Steps[len(report.Steps)-1]
	require.Equal(t, "capacity", last.Step)
	require.Equal(t, "warning", last.Status)
}

func TestScheduleService_EntityNotFound(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	sessions := &stubSessions{existing: map[scheduling.SessionCategory][]scheduling.SessionRef{}}
	svc := newTestService(sessions, &stubCircles{}, now)

	_, err := svc.ValidatePlan(context.Background(), PlanRequest{
		EntityType:   EntityIndividualCircle,
		EntityID:     uuid.New(),
		Days:         []time.Weekday{time.Monday},
		SessionCount: 1,
		TimeHour:     10,
	})
	require.ErrorIs(t, err, ErrEntityNotFound)
}

func TestScheduleService_UnknownEntityType(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	sessions := &stubSessions{existing: map[scheduling.SessionCategory][]scheduling.SessionRef{}}
	svc := newTestService(sessions, &stubCircles{}, now)

	_, err := svc.ValidatePlan(context.Background(), PlanRequest{
		EntityType:   EntityType("homework"),
		EntityID:     uuid.New(),
		Days:         []time.Weekday{time.Monday},
		SessionCount: 1,
	})
	require.ErrorIs(t, err, ErrUnknownEntityType)
}

func TestCheckAvailability(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	existing := scheduling.SessionRef{
		ID:              uuid.New(),
		ScheduledAt:     time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          "scheduled",
	}
	sessions := &stubSessions{existing: map[scheduling.SessionCategory][]scheduling.SessionRef{
		scheduling.CategoryQuran: {existing},
	}}
	svc := newTestService(sessions, &stubCircles{}, now)

	busy, err := svc.CheckAvailability(context.Background(), uuid.New(), time.Date(2025, 3, 3, 10, 30, 0, 0, time.UTC), 30)
	require.NoError(t, err)
	require.False(t, busy.Available)
	require.NotNil(t, busy.Conflict)
	require.Equal(t, existing.ID, busy.Conflict.SessionID)

	free, err := svc.CheckAvailability(context.Background(), uuid.New(), time.Date(2025, 3, 3, 14, 0, 0, 0, time.UTC), 30)
	require.NoError(t, err)
	require.True(t, free.Available)
	require.Nil(t, free.Conflict)
}
