package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateQuranSessionsTable, downCreateQuranSessionsTable)
}

func upCreateQuranSessionsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE quran_sessions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			teacher_user_id UUID NOT NULL,
			session_type TEXT NOT NULL CHECK (session_type IN ('group', 'individual', 'trial')),
			circle_id UUID REFERENCES group_circles(id) ON DELETE CASCADE,
			individual_circle_id UUID REFERENCES individual_circles(id) ON DELETE CASCADE,
			trial_request_id UUID REFERENCES trial_requests(id) ON DELETE CASCADE,
			session_code TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL DEFAULT '',
			scheduled_at TIMESTAMP WITH TIME ZONE NOT NULL,
			duration_minutes INT NOT NULL DEFAULT 60,
			status TEXT NOT NULL DEFAULT 'scheduled'
				CHECK (status IN ('scheduled', 'ongoing', 'completed', 'cancelled', 'unscheduled')),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE INDEX idx_quran_sessions_teacher_time ON quran_sessions(teacher_user_id, scheduled_at);
		CREATE INDEX idx_quran_sessions_circle ON quran_sessions(circle_id) WHERE circle_id IS NOT NULL;
		CREATE INDEX idx_quran_sessions_individual ON quran_sessions(individual_circle_id) WHERE individual_circle_id IS NOT NULL;
		CREATE INDEX idx_quran_sessions_trial ON quran_sessions(trial_request_id) WHERE trial_request_id IS NOT NULL;
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateQuranSessionsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS quran_sessions;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
