package model

import (
	"time"

	"github.com/google/uuid"
)

// GroupCircle is a continuous entity with no end date. Its monthly session
// count is a recurring target, not a consumable budget.
type GroupCircle struct {
	ID                    uuid.UUID `db:"id" json:"id"`
	TeacherUserID         uuid.UUID `db:"teacher_user_id" json:"teacher_user_id"`
	NameAr                string    `db:"name_ar" json:"name_ar"`
	MonthlySessionsCount  int       `db:"monthly_sessions_count" json:"monthly_sessions_count"`
	MaxStudents           int       `db:"max_students" json:"max_students"`
	EnrolledStudentsCount int       `db:"enrolled_students_count" json:"enrolled_students_count"`
	SessionDurationMin    int       `db:"session_duration_minutes" json:"session_duration_minutes"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
}

// IndividualCircle wraps a subscription. TotalSessions is a cached copy of
// the subscription's budget, kept so scheduling can degrade gracefully when
// the subscription row is gone (soft-deleted on renewal).
type IndividualCircle struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	TeacherUserID      uuid.UUID  `db:"teacher_user_id" json:"teacher_user_id"`
	StudentID          uuid.UUID  `db:"student_id" json:"student_id"`
	SubscriptionID     *uuid.UUID `db:"subscription_id" json:"subscription_id,omitempty"`
	TotalSessions      int        `db:"total_sessions" json:"total_sessions"`
	SessionDurationMin int        `db:"session_duration_minutes" json:"session_duration_minutes"`
	StudentName        string     `db:"student_name" json:"student_name"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
}
