package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateIndividualCirclesTable, downCreateIndividualCirclesTable)
}

func upCreateIndividualCirclesTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE individual_circles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			teacher_user_id UUID NOT NULL,
			student_id UUID NOT NULL,
			subscription_id UUID REFERENCES quran_subscriptions(id) ON DELETE SET NULL,
			total_sessions INT NOT NULL DEFAULT 0,
			session_duration_minutes INT NOT NULL DEFAULT 60,
			student_name TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE INDEX idx_individual_circles_teacher ON individual_circles(teacher_user_id);
		CREATE INDEX idx_individual_circles_student ON individual_circles(student_id);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateIndividualCirclesTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS individual_circles;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
