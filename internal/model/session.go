package model

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusScheduled   SessionStatus = "scheduled"
	SessionStatusOngoing     SessionStatus = "ongoing"
	SessionStatusCompleted   SessionStatus = "completed"
	SessionStatusCancelled   SessionStatus = "cancelled"
	SessionStatusUnscheduled SessionStatus = "unscheduled"
)

// ConsumesBudget reports whether a session in this status counts against the
// entity's remaining-session budget. Must stay in sync with the billing
// subsystem's definition of a "used" session.
func (s SessionStatus) ConsumesBudget() bool {
	switch s {
	case SessionStatusScheduled, SessionStatusOngoing, SessionStatusCompleted:
		return true
	default:
		return false
	}
}

type QuranSessionType string

const (
	QuranSessionGroup      QuranSessionType = "group"
	QuranSessionIndividual QuranSessionType = "individual"
	QuranSessionTrial      QuranSessionType = "trial"
)

// QuranSession rows key the teacher by the raw user id. Exactly one of the
// entity references is set depending on SessionType.
type QuranSession struct {
	ID                 uuid.UUID        `db:"id" json:"id"`
	TeacherUserID      uuid.UUID        `db:"teacher_user_id" json:"teacher_user_id"`
	SessionType        QuranSessionType `db:"session_type" json:"session_type"`
	CircleID           *uuid.UUID       `db:"circle_id" json:"circle_id,omitempty"`
	IndividualCircleID *uuid.UUID       `db:"individual_circle_id" json:"individual_circle_id,omitempty"`
	TrialRequestID     *uuid.UUID       `db:"trial_request_id" json:"trial_request_id,omitempty"`
	SessionCode        string           `db:"session_code" json:"session_code"`
	Title              string           `db:"title" json:"title"`
	ScheduledAt        time.Time        `db:"scheduled_at" json:"scheduled_at"`
	DurationMinutes    int              `db:"duration_minutes" json:"duration_minutes"`
	Status             SessionStatus    `db:"status" json:"status"`
	CreatedAt          time.Time        `db:"created_at" json:"created_at"`
}

// AcademicSession rows key the teacher by the academic teacher-profile id,
// not the user id.
type AcademicSession struct {
	ID               uuid.UUID     `db:"id" json:"id"`
	TeacherProfileID uuid.UUID     `db:"teacher_profile_id" json:"teacher_profile_id"`
	SubscriptionID   uuid.UUID     `db:"subscription_id" json:"subscription_id"`
	SessionCode      string        `db:"session_code" json:"session_code"`
	Title            string        `db:"title" json:"title"`
	ScheduledAt      time.Time     `db:"scheduled_at" json:"scheduled_at"`
	DurationMinutes  int           `db:"duration_minutes" json:"duration_minutes"`
	Status           SessionStatus `db:"status" json:"status"`
	CreatedAt        time.Time     `db:"created_at" json:"created_at"`
}

// CourseSession rows key the teacher by the academic teacher-profile id.
type CourseSession struct {
	ID               uuid.UUID     `db:"id" json:"id"`
	TeacherProfileID uuid.UUID     `db:"teacher_profile_id" json:"teacher_profile_id"`
	CourseID         uuid.UUID     `db:"course_id" json:"course_id"`
	SessionCode      string        `db:"session_code" json:"session_code"`
	Title            string        `db:"title" json:"title"`
	ScheduledAt      time.Time     `db:"scheduled_at" json:"scheduled_at"`
	DurationMinutes  int           `db:"duration_minutes" json:"duration_minutes"`
	Status           SessionStatus `db:"status" json:"status"`
	CreatedAt        time.Time     `db:"created_at" json:"created_at"`
}
