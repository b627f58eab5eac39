package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateTrialRequestsTable, downCreateTrialRequestsTable)
}

func upCreateTrialRequestsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE trial_requests (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			teacher_user_id UUID NOT NULL,
			student_name TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending'
				CHECK (status IN ('pending', 'approved', 'cancelled', 'completed')),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE INDEX idx_trial_requests_teacher ON trial_requests(teacher_user_id);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateTrialRequestsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS trial_requests;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
