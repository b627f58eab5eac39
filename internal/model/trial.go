package model

import (
	"time"

	"github.com/google/uuid"
)

type TrialStatus string

const (
	TrialPending   TrialStatus = "pending"
	TrialApproved  TrialStatus = "approved"
	TrialCancelled TrialStatus = "cancelled"
	TrialCompleted TrialStatus = "completed"
)

// Schedulable reports whether a trial in this status may still have its
// single session scheduled.
func (s TrialStatus) Schedulable() bool {
	return s == TrialPending || s == TrialApproved
}

// TrialRequest gets exactly one session, ever.
type TrialRequest struct {
	ID            uuid.UUID   `db:"id" json:"id"`
	TeacherUserID uuid.UUID   `db:"teacher_user_id" json:"teacher_user_id"`
	StudentName   string      `db:"student_name" json:"student_name"`
	Status        TrialStatus `db:"status" json:"status"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
}
