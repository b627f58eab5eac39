package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/model"
)

type CircleRepository interface {
	FindGroupByID(ctx context.Context, id uuid.UUID) (*model.GroupCircle, error)
	FindIndividualByID(ctx context.Context, id uuid.UUID) (*model.IndividualCircle, error)
}

type postgresCircleRepository struct {
	db *sqlx.DB
}

func NewPostgresCircleRepository(db *sqlx.DB) CircleRepository {
	return &postgresCircleRepository{db: db}
}

func (r *postgresCircleRepository) FindGroupByID(ctx context.Context, id uuid.UUID) (*model.GroupCircle, error) {
	var circle model.GroupCircle
	query := `
		SELECT id, teacher_user_id, name_ar, monthly_sessions_count, max_students,
		       enrolled_students_count, session_duration_minutes, created_at
		FROM group_circles
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &circle, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &circle, nil
}

func (r *postgresCircleRepository) FindIndividualByID(ctx context.Context, id uuid.UUID) (*model.IndividualCircle, error) {
	var circle model.IndividualCircle
	query := `
		SELECT id, teacher_user_id, student_id, subscription_id, total_sessions,
		       session_duration_minutes, student_name, created_at
		FROM individual_circles
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &circle, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &circle, nil
}
