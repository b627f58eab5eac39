package model

import (
	"time"

	"github.com/google/uuid"
)

// InteractiveCourse has a curriculum-fixed session budget: TotalSessions and
// DurationWeeks belong to the course itself, not to a subscription.
type InteractiveCourse struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	TeacherProfileID uuid.UUID  `db:"teacher_profile_id" json:"teacher_profile_id"`
	TeacherUserID    uuid.UUID  `db:"teacher_user_id" json:"teacher_user_id"`
	NameAr           string     `db:"name_ar" json:"name_ar"`
	TotalSessions    int        `db:"total_sessions" json:"total_sessions"`
	DurationWeeks    int        `db:"duration_weeks" json:"duration_weeks"`
	StartDate        *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate          *time.Time `db:"end_date" json:"end_date,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}
