package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/model"
)

type TeacherProfileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.TeacherProfile, error)
	ResolveTeacherProfileID(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error)
}

type postgresTeacherProfileRepository struct {
	db *sqlx.DB
}

func NewPostgresTeacherProfileRepository(db *sqlx.DB) TeacherProfileRepository {
	return &postgresTeacherProfileRepository{db: db}
}

func (r *postgresTeacherProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TeacherProfile, error) {
	var profile model.TeacherProfile
	query := `SELECT id, user_id, kind, created_at FROM teacher_profiles WHERE id = $1`
	err := r.db.GetContext(ctx, &profile, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// ResolveTeacherProfileID maps a teacher's user id to their academic profile
// id. A teacher without an academic profile resolves to (nil, nil); callers
// treat that as "no sessions in the academic namespace".
func (r *postgresTeacherProfileRepository) ResolveTeacherProfileID(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error) {
	var id uuid.UUID
	query := `SELECT id FROM teacher_profiles WHERE user_id = $1 AND kind = 'academic'`
	err := r.db.GetContext(ctx, &id, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &id, nil
}
