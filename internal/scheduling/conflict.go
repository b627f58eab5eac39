package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultBufferMinutes is the mandatory idle gap required before and after a
// session for the same teacher.
const DefaultBufferMinutes = 5

var ErrPastSchedule = errors.New("cannot schedule a session in the past")

// Window is the half-open interval [Start, End) a candidate session occupies,
// already widened by the buffer.
type Window struct {
	Start time.Time
	End   time.Time
}

// SessionRef identifies an existing session found by an overlap query.
type SessionRef struct {
	ID              uuid.UUID
	ScheduledAt     time.Time
	DurationMinutes int
	Status          string
}

// Conflict reports which existing session collides and which category it
// came from.
type Conflict struct {
	Session  SessionRef
	Category SessionCategory
}

// MessageAr renders the localized conflict reason shown to the teacher.
func (c Conflict) MessageAr() string {
	return msgConflict(c.Category, c.Session.ScheduledAt)
}

// SessionStore answers overlap queries for one category at a time. The
// teacherRef is a user id for CategoryQuran and a teacher-profile id for the
// other two; callers resolve it first. Implementations must exclude
// cancelled sessions and, when excludeID is non-nil, the session with that
// id.
type SessionStore interface {
	FindOverlapping(ctx context.Context, category SessionCategory, teacherRef uuid.UUID, window Window, excludeID uuid.UUID) (*SessionRef, error)
}

// ProfileResolver maps a teacher's user id to the profile id used by
// academic and course sessions. A (nil, nil) return means the user has no
// such profile.
type ProfileResolver interface {
	ResolveTeacherProfileID(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error)
}

// ConflictDetector decides whether a candidate time window collides with any
// existing session across the three categories, honouring the buffer margin.
type ConflictDetector struct {
	sessions SessionStore
	profiles ProfileResolver
	clock    Clock
	buffer   time.Duration
}

// NewConflictDetector builds a detector with an explicit buffer. Pass
// bufferMinutes <= 0 to use the default.
func NewConflictDetector(sessions SessionStore, profiles ProfileResolver, clock Clock, bufferMinutes int) *ConflictDetector {
	if bufferMinutes <= 0 {
		bufferMinutes = DefaultBufferMinutes
	}
	return &ConflictDetector{
		sessions: sessions,
		profiles: profiles,
		clock:    clock,
		buffer:   time.Duration(bufferMinutes) * time.Minute,
	}
}

// FindConflict returns the first colliding session, or nil when the slot is
// free. The candidate window is widened by the buffer on both sides; an
// existing session overlaps when its own interval intersects the widened
// window. A start before "now" in the academy timezone is ErrPastSchedule
// before any query runs.
//
// excludeID only applies to the candidate's own category: a session being
// rescheduled must not conflict with itself, but an id collision in another
// category is a different row entirely.
func (d *ConflictDetector) FindConflict(
	ctx context.Context,
	teacherUserID uuid.UUID,
	start, end time.Time,
	excludeID uuid.UUID,
	category SessionCategory,
) (*Conflict, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("invalid candidate window: end %s not after start %s", end, start)
	}
	now := d.clock.Now()
	if start.Before(now) {
		return nil, ErrPastSchedule
	}

	window := Window{Start: start.Add(-d.buffer), End: end.Add(d.buffer)}

	for _, cat := range AllCategories {
		ref, err := d.teacherRef(ctx, teacherUserID, cat)
		if err != nil {
			return nil, fmt.Errorf("resolve teacher reference for %s: %w", cat, err)
		}
		if ref == nil {
			// No profile in this category means no sessions can exist
			// there: not an error.
			continue
		}

		exclude := uuid.Nil
		if cat == category {
			exclude = excludeID
		}

		hit, err := d.sessions.FindOverlapping(ctx, cat, *ref, window, exclude)
		if err != nil {
			return nil, fmt.Errorf("overlap query for %s: %w", cat, err)
		}
		if hit != nil {
			return &Conflict{Session: *hit, Category: cat}, nil
		}
	}

	return nil, nil
}

// IsSlotAvailable is the advisory wrapper: false on any conflict or any
// failure, true only when the slot is verifiably free. It never returns an
// error, so it must not be the sole gate before a write; use FindConflict
// for that.
func (d *ConflictDetector) IsSlotAvailable(
	ctx context.Context,
	teacherUserID uuid.UUID,
	start time.Time,
	durationMinutes int,
	excludeID uuid.UUID,
	category SessionCategory,
) bool {
	if durationMinutes <= 0 {
		return false
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	conflict, err := d.FindConflict(ctx, teacherUserID, start, end, excludeID, category)
	return err == nil && conflict == nil
}

// teacherRef is the strategy table keyed by category: Quran sessions key on
// the raw user id, academic and course sessions on the resolved profile id.
func (d *ConflictDetector) teacherRef(ctx context.Context, userID uuid.UUID, cat SessionCategory) (*uuid.UUID, error) {
	switch cat {
	case CategoryQuran:
		id := userID
		return &id, nil
	case CategoryAcademic, CategoryCourse:
		return d.profiles.ResolveTeacherProfileID(ctx, userID)
	default:
		return nil, fmt.Errorf("unknown session category %d", cat)
	}
}

// Overlaps reports whether the session interval [sessionStart,
// sessionStart+duration) intersects the widened window. Both exported for
// reuse by in-memory stores and tests; the SQL store expresses the same
// predicate in its WHERE clause.
func Overlaps(window Window, sessionStart time.Time, durationMinutes int) bool {
	sessionEnd := sessionStart.Add(time.Duration(durationMinutes) * time.Minute)
	return sessionStart.Before(window.End) && window.Start.Before(sessionEnd)
}
