package model

import (
	"time"

	"github.com/google/uuid"
)

type TeacherProfileKind string

const (
	TeacherKindQuran    TeacherProfileKind = "quran"
	TeacherKindAcademic TeacherProfileKind = "academic"
)

// TeacherProfile is a secondary identifier space. Academic and course
// sessions reference the profile id; Quran sessions reference the user id
// directly.
type TeacherProfile struct {
	ID        uuid.UUID          `db:"id" json:"id"`
	UserID    uuid.UUID          `db:"user_id" json:"user_id"`
	Kind      TeacherProfileKind `db:"kind" json:"kind"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
}
