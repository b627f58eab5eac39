package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/model"
)

type SubscriptionRepository interface {
	FindQuranByID(ctx context.Context, id uuid.UUID) (*model.QuranSubscription, error)
	FindAcademicByID(ctx context.Context, id uuid.UUID) (*model.AcademicSubscription, error)
}

type postgresSubscriptionRepository struct {
	db *sqlx.DB
}

func NewPostgresSubscriptionRepository(db *sqlx.DB) SubscriptionRepository {
	return &postgresSubscriptionRepository{db: db}
}

// FindQuranByID returns (nil, nil) when the subscription row is gone, which
// happens after renewal soft-deletes the old cycle. Individual-circle
// validation falls back to the circle's cached budget in that case.
func (r *postgresSubscriptionRepository) FindQuranByID(ctx context.Context, id uuid.UUID) (*model.QuranSubscription, error) {
	var sub model.QuranSubscription
	query := `
		SELECT id, student_id, total_sessions, starts_at, billing_cycle, status, created_at
		FROM quran_subscriptions
		WHERE id = $1 AND deleted_at IS NULL
	`
	err := r.db.GetContext(ctx, &sub, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *postgresSubscriptionRepository) FindAcademicByID(ctx context.Context, id uuid.UUID) (*model.AcademicSubscription, error) {
	var sub model.AcademicSubscription
	query := `
		SELECT id, student_id, teacher_profile_id, total_sessions, starts_at, ends_at, status, created_at
		FROM academic_subscriptions
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &sub, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}
