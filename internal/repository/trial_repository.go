package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/model"
)

type TrialRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.TrialRequest, error)
}

type postgresTrialRepository struct {
	db *sqlx.DB
}

func NewPostgresTrialRepository(db *sqlx.DB) TrialRepository {
	return &postgresTrialRepository{db: db}
}

func (r *postgresTrialRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TrialRequest, error) {
	var trial model.TrialRequest
	query := `SELECT id, teacher_user_id, student_name, status, created_at FROM trial_requests WHERE id = $1`
	err := r.db.GetContext(ctx, &trial, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &trial, nil
}
