package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/events"
	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/model"
	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/repository"
	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/scheduling"
)

var (
	ErrEntityNotFound    = errors.New("scheduling entity not found")
	ErrUnknownEntityType = errors.New("unknown entity type")
	ErrPlanInvalid       = errors.New("scheduling plan failed validation")
	ErrNoSchedulableSlot = errors.New("no schedulable slot in the requested range")
)

// EntityType selects which validator family a request runs through.
type EntityType string

const (
	EntityTrial             EntityType = "trial"
	EntityGroupCircle       EntityType = "group_circle"
	EntityIndividualCircle  EntityType = "individual_circle"
	EntityAcademicLesson    EntityType = "academic_lesson"
	EntityInteractiveCourse EntityType = "interactive_course"
)

// PlanRequest describes one scheduling plan: which entity, which weekdays,
// how many sessions, starting when, and at what time of day.
type PlanRequest struct {
	EntityType      EntityType
	EntityID        uuid.UUID
	Days            []time.Weekday
	SessionCount    int
	StartDate       *time.Time
	TimeHour        int
	TimeMinute      int
	DurationMinutes int
	Title           string
}

// StepResult is one validation step's verdict in API form.
type StepResult struct {
	Step    string         `json:"step"`
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// PlanReport is the full validation verdict. Valid is false when any step
// errored; warnings are carried through but never block.
type PlanReport struct {
	Valid bool         `json:"valid"`
	Steps []StepResult `json:"steps"`
}

// CreatedSession is the API view of one session placed by a bulk run.
type CreatedSession struct {
	ID          uuid.UUID `json:"id"`
	SessionCode string    `json:"session_code"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// SkippedSlot records a candidate slot that could not be used and why.
type SkippedSlot struct {
	At     time.Time `json:"at"`
	Reason string    `json:"reason"`
}

// BulkResult summarises one bulk-scheduling run.
type BulkResult struct {
	Report    *PlanReport      `json:"report"`
	Requested int              `json:"requested"`
	Created   []CreatedSession `json:"created"`
	Skipped   []SkippedSlot    `json:"skipped"`
	Capped    bool             `json:"capped"`
}

// SlotCheck is the availability answer for a single candidate slot.
type SlotCheck struct {
	Available bool          `json:"available"`
	Conflict  *ConflictInfo `json:"conflict,omitempty"`
}

type ConflictInfo struct {
	Category    string    `json:"category"`
	SessionID   uuid.UUID `json:"session_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Message     string    `json:"message"`
}

type ScheduleService interface {
	ValidatePlan(ctx context.Context, req PlanRequest) (*PlanReport, error)
	BulkSchedule(ctx context.Context, req PlanRequest) (*BulkResult, error)
	CheckAvailability(ctx context.Context, teacherUserID uuid.UUID, start time.Time, durationMinutes int) (*SlotCheck, error)
	Recommendations(ctx context.Context, entityType EntityType, entityID uuid.UUID) (*scheduling.Recommendations, error)
	SchedulingStatus(ctx context.Context, entityType EntityType, entityID uuid.UUID) (*scheduling.SchedulingStatus, error)
}

type scheduleService struct {
	sessions  repository.SessionRepository
	circles   repository.CircleRepository
	subs      repository.SubscriptionRepository
	courses   repository.CourseRepository
	trials    repository.TrialRepository
	profiles  repository.TeacherProfileRepository
	detector  *scheduling.ConflictDetector
	publisher events.EventPublisher
	clock     scheduling.Clock
}

func NewScheduleService(
	sessions repository.SessionRepository,
	circles repository.CircleRepository,
	subs repository.SubscriptionRepository,
	courses repository.CourseRepository,
	trials repository.TrialRepository,
	profiles repository.TeacherProfileRepository,
	detector *scheduling.ConflictDetector,
	publisher events.EventPublisher,
	clock scheduling.Clock,
) ScheduleService {
	return &scheduleService{
		sessions:  sessions,
		circles:   circles,
		subs:      subs,
		courses:   courses,
		trials:    trials,
		profiles:  profiles,
		detector:  detector,
		publisher: publisher,
		clock:     clock,
	}
}

// entityContext binds a resolved entity to everything a bulk run needs: its
// validator, the teacher's user id, the conflict category its sessions live
// in, defaults, and the typed insert path for its session table.
type entityContext struct {
	validator       scheduling.ScheduleValidator
	teacherUserID   uuid.UUID
	category        scheduling.SessionCategory
	durationMinutes int
	codePrefix      string
	defaultTitle    string
	minLead         time.Duration
	capToRemaining  bool
	remaining       func(ctx context.Context) (int, error)
	insert          func(ctx context.Context, slots []time.Time, codes []string, title string, duration int) ([]CreatedSession, error)
}

func (s *scheduleService) ValidatePlan(ctx context.Context, req PlanRequest) (*PlanReport, error) {
	ec, err := s.resolveEntity(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.runValidation(ctx, req, ec)
}

// runValidation executes the fixed step sequence and stops at the first
// error. Warnings accumulate; the plan stays valid through them.
func (s *scheduleService) runValidation(ctx context.Context, req PlanRequest, ec *entityContext) (*PlanReport, error) {
	weeksAhead := weeksFor(req.SessionCount, len(uniqueWeekdays(req.Days)))

	type step struct {
		name string
		run  func(context.Context) (scheduling.Result, error)
	}
	steps := []step{
		{"day_selection", func(ctx context.Context) (scheduling.Result, error) {
			return ec.validator.ValidateDaySelection(ctx, req.Days)
		}},
		{"session_count", func(ctx context.Context) (scheduling.Result, error) {
			return ec.validator.ValidateSessionCount(ctx, req.SessionCount)
		}},
		{"date_range", func(ctx context.Context) (scheduling.Result, error) {
			return ec.validator.ValidateDateRange(ctx, req.StartDate, weeksAhead)
		}},
		{"weekly_pacing", func(ctx context.Context) (scheduling.Result, error) {
			return ec.validator.ValidateWeeklyPacing(ctx, req.Days, weeksAhead)
		}},
	}

	report := &PlanReport{Valid: true}
	for _, st := range steps {
		res, err := st.run(ctx)
		if err != nil {
			return nil, fmt.Errorf("validation step %s: %w", st.name, err)
		}
		report.Steps = append(report.Steps, StepResult{
			Step:    st.name,
			Status:  res.Kind().String(),
			Message: res.Message(),
			Data:    res.Data(),
		})
		if res.IsError() {
			report.Valid = false
			planValidationFailures.WithLabelValues(string(req.EntityType), st.name).Inc()
			return report, nil
		}
	}

	// Group circles additionally surface an enrollment advisory.
	if gv, ok := ec.validator.(*scheduling.GroupCircleValidator); ok {
		res := gv.ValidateCapacity()
		report.Steps = append(report.Steps, StepResult{
			Step:    "capacity",
			Status:  res.Kind().String(),
			Message: res.Message(),
			Data:    res.Data(),
		})
	}

	return report, nil
}

func (s *scheduleService) BulkSchedule(ctx context.Context, req PlanRequest) (*BulkResult, error) {
	ec, err := s.resolveEntity(ctx, req)
	if err != nil {
		return nil, err
	}

	report, err := s.runValidation(ctx, req, ec)
	if err != nil {
		return nil, err
	}
	result := &BulkResult{Report: report, Requested: req.SessionCount}
	if !report.Valid {
		return result, ErrPlanInvalid
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = ec.durationMinutes
	}
	title := req.Title
	if title == "" {
		title = ec.defaultTitle
	}

	// Everything from here to the insert runs under the teacher's advisory
	// lock: the conflict sweep is a read-then-write, and two concurrent runs
	// for the same teacher must not both see a slot as free.
	release, err := s.sessions.AcquireTeacherLock(ctx, ec.teacherUserID)
	if err != nil {
		return nil, err
	}
	defer release()

	count := req.SessionCount
	if ec.capToRemaining {
		// Re-read the budget under the lock: a run that committed between
		// validation and here may have consumed part of it.
		rem, err := ec.remaining(ctx)
		if err != nil {
			return nil, err
		}
		if count > rem {
			count = rem
			result.Capped = true
		}
	}
	if count == 0 {
		return result, ErrNoSchedulableSlot
	}

	now := s.clock.Now()
	slots := expandSlots(now, req, count, ec.validator.MaxScheduleDate())
	if len(slots) == 0 {
		return result, ErrNoSchedulableSlot
	}

	var free []time.Time
	for _, at := range slots {
		// Date-range validation may only have seen a bare date; the lead
		// time applies to every concrete slot the expansion produced.
		if at.Before(now.Add(ec.minLead)) {
			result.Skipped = append(result.Skipped, SkippedSlot{At: at, Reason: "lead_time"})
			continue
		}
		end := at.Add(time.Duration(duration) * time.Minute)
		conflict, err := s.detector.FindConflict(ctx, ec.teacherUserID, at, end, uuid.Nil, ec.category)
		if err != nil {
			if errors.Is(err, scheduling.ErrPastSchedule) {
				result.Skipped = append(result.Skipped, SkippedSlot{At: at, Reason: "past"})
				continue
			}
			return nil, err
		}
		if conflict != nil {
			scheduleConflictsTotal.WithLabelValues(conflict.Category.String()).Inc()
			result.Skipped = append(result.Skipped, SkippedSlot{At: at, Reason: conflict.MessageAr()})
			continue
		}
		free = append(free, at)
	}
	if len(free) == 0 {
		return result, ErrNoSchedulableSlot
	}

	codes := make([]string, len(free))
	for i := range free {
		codes[i] = sessionCode(ec.codePrefix)
	}

	created, err := ec.insert(ctx, free, codes, title, duration)
	if err != nil {
		return nil, err
	}
	result.Created = created
	sessionsScheduledTotal.WithLabelValues(string(req.EntityType)).Add(float64(len(created)))

	for _, c := range created {
		evt := events.SessionScheduledEvent{
			SessionID:     c.ID,
			SessionCode:   c.SessionCode,
			Category:      ec.category.String(),
			TeacherUserID: ec.teacherUserID,
			EntityID:      req.EntityID,
			ScheduledAt:   c.ScheduledAt,
		}
		go s.publisher.PublishSessionScheduled(evt)
	}
	go s.publisher.PublishBulkScheduleCompleted(events.BulkScheduleCompletedEvent{
		EntityType:    string(req.EntityType),
		EntityID:      req.EntityID,
		TeacherUserID: ec.teacherUserID,
		Requested:     req.SessionCount,
		Created:       len(created),
		Skipped:       len(result.Skipped),
		CompletedAt:   now,
	})

	return result, nil
}

func (s *scheduleService) CheckAvailability(ctx context.Context, teacherUserID uuid.UUID, start time.Time, durationMinutes int) (*SlotCheck, error) {
	if durationMinutes <= 0 {
		durationMinutes = 60
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	conflict, err := s.detector.FindConflict(ctx, teacherUserID, start, end, uuid.Nil, scheduling.CategoryQuran)
	if err != nil {
		return nil, err
	}
	if conflict == nil {
		return &SlotCheck{Available: true}, nil
	}
	return &SlotCheck{
		Available: false,
		Conflict: &ConflictInfo{
			Category:    conflict.Category.String(),
			SessionID:   conflict.Session.ID,
			ScheduledAt: conflict.Session.ScheduledAt,
			Message:     conflict.MessageAr(),
		},
	}, nil
}

func (s *scheduleService) Recommendations(ctx context.Context, entityType EntityType, entityID uuid.UUID) (*scheduling.Recommendations, error) {
	ec, err := s.resolveEntity(ctx, PlanRequest{EntityType: entityType, EntityID: entityID})
	if err != nil {
		return nil, err
	}
	rec, err := ec.validator.Recommendations(ctx)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *scheduleService) SchedulingStatus(ctx context.Context, entityType EntityType, entityID uuid.UUID) (*scheduling.SchedulingStatus, error) {
	ec, err := s.resolveEntity(ctx, PlanRequest{EntityType: entityType, EntityID: entityID})
	if err != nil {
		return nil, err
	}
	status, err := ec.validator.SchedulingStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// resolveEntity loads the entity row and assembles its context. The entity id
// means a different table per type: circle id, subscription id, course id or
// trial-request id.
func (s *scheduleService) resolveEntity(ctx context.Context, req PlanRequest) (*entityContext, error) {
	switch req.EntityType {
	case EntityTrial:
		return s.resolveTrial(ctx, req.EntityID)
	case EntityGroupCircle:
		return s.resolveGroupCircle(ctx, req.EntityID)
	case EntityIndividualCircle:
		return s.resolveIndividualCircle(ctx, req.EntityID)
	case EntityAcademicLesson:
		return s.resolveAcademicLesson(ctx, req.EntityID)
	case EntityInteractiveCourse:
		return s.resolveInteractiveCourse(ctx, req.EntityID)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntityType, req.EntityType)
	}
}

func (s *scheduleService) resolveTrial(ctx context.Context, id uuid.UUID) (*entityContext, error) {
	trial, err := s.trials.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trial == nil {
		return nil, ErrEntityNotFound
	}
	trialID := trial.ID
	return &entityContext{
		validator:       scheduling.NewTrialSessionValidator(*trial, s.sessions, s.clock),
		teacherUserID:   trial.TeacherUserID,
		category:        scheduling.CategoryQuran,
		durationMinutes: 30,
		codePrefix:      "TRL",
		defaultTitle:    "جلسة تجريبية - " + trial.StudentName,
		minLead:         scheduling.TrialLeadTime,
		insert: func(ctx context.Context, slots []time.Time, codes []string, title string, duration int) ([]CreatedSession, error) {
			sessions := make([]model.QuranSession, len(slots))
			for i, at := range slots {
				sessions[i] = model.QuranSession{
					TeacherUserID:   trial.TeacherUserID,
					SessionType:     model.QuranSessionTrial,
					TrialRequestID:  &trialID,
					SessionCode:     codes[i],
					Title:           title,
					ScheduledAt:     at,
					DurationMinutes: duration,
					Status:          model.SessionStatusScheduled,
				}
			}
			out, err := s.sessions.CreateQuranBatch(ctx, trial.TeacherUserID, sessions)
			return toCreated(out, err)
		},
	}, nil
}

func (s *scheduleService) resolveGroupCircle(ctx context.Context, id uuid.UUID) (*entityContext, error) {
	circle, err := s.circles.FindGroupByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if circle == nil {
		return nil, ErrEntityNotFound
	}
	circleID := circle.ID
	return &entityContext{
		validator:       scheduling.NewGroupCircleValidator(*circle, s.sessions, s.clock),
		teacherUserID:   circle.TeacherUserID,
		category:        scheduling.CategoryQuran,
		durationMinutes: nonZero(circle.SessionDurationMin, 60),
		codePrefix:      "GRP",
		defaultTitle:    circle.NameAr,
		insert: func(ctx context.Context, slots []time.Time, codes []string, title string, duration int) ([]CreatedSession, error) {
			sessions := make([]model.QuranSession, len(slots))
			for i, at := range slots {
				sessions[i] = model.QuranSession{
					TeacherUserID:   circle.TeacherUserID,
					SessionType:     model.QuranSessionGroup,
					CircleID:        &circleID,
					SessionCode:     codes[i],
					Title:           title,
					ScheduledAt:     at,
					DurationMinutes: duration,
					Status:          model.SessionStatusScheduled,
				}
			}
			out, err := s.sessions.CreateQuranBatch(ctx, circle.TeacherUserID, sessions)
			return toCreated(out, err)
		},
	}, nil
}

func (s *scheduleService) resolveIndividualCircle(ctx context.Context, id uuid.UUID) (*entityContext, error) {
	circle, err := s.circles.FindIndividualByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if circle == nil {
		return nil, ErrEntityNotFound
	}
	var sub *model.QuranSubscription
	if circle.SubscriptionID != nil {
		sub, err = s.subs.FindQuranByID(ctx, *circle.SubscriptionID)
		if err != nil {
			return nil, err
		}
	}

	validator := scheduling.NewIndividualCircleValidator(*circle, sub, s.sessions, s.clock)
	circleID := circle.ID
	return &entityContext{
		validator:       validator,
		teacherUserID:   circle.TeacherUserID,
		category:        scheduling.CategoryQuran,
		durationMinutes: nonZero(circle.SessionDurationMin, 60),
		codePrefix:      "IND",
		defaultTitle:    "حلقة فردية - " + circle.StudentName,
		capToRemaining:  true,
		remaining: func(ctx context.Context) (int, error) {
			used, err := s.sessions.CountIndividualCircleUsed(ctx, circleID)
			if err != nil {
				return 0, err
			}
			total := circle.TotalSessions
			if sub != nil {
				total = sub.TotalSessions
			}
			if used >= total {
				return 0, nil
			}
			return total - used, nil
		},
		insert: func(ctx context.Context, slots []time.Time, codes []string, title string, duration int) ([]CreatedSession, error) {
			sessions := make([]model.QuranSession, len(slots))
			for i, at := range slots {
				sessions[i] = model.QuranSession{
					TeacherUserID:      circle.TeacherUserID,
					SessionType:        model.QuranSessionIndividual,
					IndividualCircleID: &circleID,
					SessionCode:        codes[i],
					Title:              title,
					ScheduledAt:        at,
					DurationMinutes:    duration,
					Status:             model.SessionStatusScheduled,
				}
			}
			out, err := s.sessions.CreateQuranBatch(ctx, circle.TeacherUserID, sessions)
			return toCreated(out, err)
		},
	}, nil
}

func (s *scheduleService) resolveAcademicLesson(ctx context.Context, id uuid.UUID) (*entityContext, error) {
	sub, err := s.subs.FindAcademicByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrEntityNotFound
	}
	profile, err := s.profiles.FindByID(ctx, sub.TeacherProfileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: teacher profile %s", ErrEntityNotFound, sub.TeacherProfileID)
	}

	subID := sub.ID
	profileID := sub.TeacherProfileID
	return &entityContext{
		validator:       scheduling.NewAcademicLessonValidator(*sub, s.sessions, s.clock),
		teacherUserID:   profile.UserID,
		category:        scheduling.CategoryAcademic,
		durationMinutes: 60,
		codePrefix:      "ACD",
		defaultTitle:    "درس أكاديمي",
		insert: func(ctx context.Context, slots []time.Time, codes []string, title string, duration int) ([]CreatedSession, error) {
			sessions := make([]model.AcademicSession, len(slots))
			for i, at := range slots {
				sessions[i] = model.AcademicSession{
					TeacherProfileID: profileID,
					SubscriptionID:   subID,
					SessionCode:      codes[i],
					Title:            title,
					ScheduledAt:      at,
					DurationMinutes:  duration,
					Status:           model.SessionStatusScheduled,
				}
			}
			out, err := s.sessions.CreateAcademicBatch(ctx, profile.UserID, sessions)
			if err != nil {
				return nil, err
			}
			created := make([]CreatedSession, len(out))
			for i, sess := range out {
				created[i] = CreatedSession{ID: sess.ID, SessionCode: sess.SessionCode, ScheduledAt: sess.ScheduledAt}
			}
			return created, nil
		},
	}, nil
}

func (s *scheduleService) resolveInteractiveCourse(ctx context.Context, id uuid.UUID) (*entityContext, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrEntityNotFound
	}

	courseID := course.ID
	profileID := course.TeacherProfileID
	return &entityContext{
		validator:       scheduling.NewInteractiveCourseValidator(*course, s.sessions, s.clock),
		teacherUserID:   course.TeacherUserID,
		category:        scheduling.CategoryCourse,
		durationMinutes: 60,
		codePrefix:      "CRS",
		defaultTitle:    course.NameAr,
		insert: func(ctx context.Context, slots []time.Time, codes []string, title string, duration int) ([]CreatedSession, error) {
			sessions := make([]model.CourseSession, len(slots))
			for i, at := range slots {
				sessions[i] = model.CourseSession{
					TeacherProfileID: profileID,
					CourseID:         courseID,
					SessionCode:      codes[i],
					Title:            title,
					ScheduledAt:      at,
					DurationMinutes:  duration,
					Status:           model.SessionStatusScheduled,
				}
			}
			out, err := s.sessions.CreateCourseBatch(ctx, course.TeacherUserID, sessions)
			if err != nil {
				return nil, err
			}
			created := make([]CreatedSession, len(out))
			for i, sess := range out {
				created[i] = CreatedSession{ID: sess.ID, SessionCode: sess.SessionCode, ScheduledAt: sess.ScheduledAt}
			}
			return created, nil
		},
	}, nil
}

func toCreated(out []model.QuranSession, err error) ([]CreatedSession, error) {
	if err != nil {
		return nil, err
	}
	created := make([]CreatedSession, len(out))
	for i, sess := range out {
		created[i] = CreatedSession{ID: sess.ID, SessionCode: sess.SessionCode, ScheduledAt: sess.ScheduledAt}
	}
	return created, nil
}

// expandSlots lays out candidate datetimes: for each week of the horizon,
// each selected weekday at the requested time of day, in chronological order,
// until count slots are gathered. Slots before now or beyond maxDate are
// dropped.
func expandSlots(now time.Time, req PlanRequest, count int, maxDate *time.Time) []time.Time {
	days := uniqueWeekdays(req.Days)
	if len(days) == 0 || count <= 0 {
		return nil
	}
	weeksAhead := weeksFor(count, len(days))

	base := now
	if req.StartDate != nil && req.StartDate.After(now) {
		base = *req.StartDate
	}
	weekStart := time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, base.Location())

	// Order days by their first occurrence on or after the start date so the
	// emitted slots are chronological within each week.
	sort.Slice(days, func(i, j int) bool {
		return weekdayOffset(weekStart, days[i]) < weekdayOffset(weekStart, days[j])
	})

	var slots []time.Time
	for week := 0; week < weeksAhead && len(slots) < count; week++ {
		for _, day := range days {
			if len(slots) >= count {
				break
			}
			date := weekStart.AddDate(0, 0, week*7+weekdayOffset(weekStart, day))
			at := time.Date(date.Year(), date.Month(), date.Day(), req.TimeHour, req.TimeMinute, 0, 0, base.Location())
			if at.Before(now) {
				continue
			}
			if maxDate != nil && at.After(*maxDate) {
				continue
			}
			slots = append(slots, at)
		}
	}
	return slots
}

func weekdayOffset(from time.Time, day time.Weekday) int {
	return (int(day) - int(from.Weekday()) + 7) % 7
}

// weeksFor is the horizon needed to place count sessions over the selected
// days: ceil(count / len(days)), never below 1.
func weeksFor(count, numDays int) int {
	if numDays <= 0 || count <= 0 {
		return 1
	}
	weeks := (count + numDays - 1) / numDays
	if weeks < 1 {
		weeks = 1
	}
	return weeks
}

func uniqueWeekdays(days []time.Weekday) []time.Weekday {
	seen := make(map[time.Weekday]struct{}, len(days))
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

func sessionCode(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.NewString()[:8])
}

func nonZero(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
