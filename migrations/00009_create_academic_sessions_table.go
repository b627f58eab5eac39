package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateAcademicSessionsTable, downCreateAcademicSessionsTable)
}

func upCreateAcademicSessionsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE academic_sessions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			teacher_profile_id UUID NOT NULL REFERENCES teacher_profiles(id),
			subscription_id UUID NOT NULL REFERENCES academic_subscriptions(id) ON DELETE CASCADE,
			session_code TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL DEFAULT '',
			scheduled_at TIMESTAMP WITH TIME ZONE NOT NULL,
			duration_minutes INT NOT NULL DEFAULT 60,
			status TEXT NOT NULL DEFAULT 'scheduled'
				CHECK (status IN ('scheduled', 'ongoing', 'completed', 'cancelled', 'unscheduled')),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE INDEX idx_academic_sessions_teacher_time ON academic_sessions(teacher_profile_id, scheduled_at);
		CREATE INDEX idx_academic_sessions_subscription ON academic_sessions(subscription_id);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateAcademicSessionsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS academic_sessions;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
