package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/model"
)

type CourseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.InteractiveCourse, error)
}

type postgresCourseRepository struct {
	db *sqlx.DB
}

func NewPostgresCourseRepository(db *sqlx.DB) CourseRepository {
	return &postgresCourseRepository{db: db}
}

func (r *postgresCourseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.InteractiveCourse, error) {
	var course model.InteractiveCourse
	query := `
		SELECT id, teacher_profile_id, teacher_user_id, name_ar, total_sessions,
		       duration_weeks, start_date, end_date, created_at
		FROM interactive_courses
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &course, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}
