package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateAcademicSubscriptionsTable, downCreateAcademicSubscriptionsTable)
}

func upCreateAcademicSubscriptionsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE academic_subscriptions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL,
			teacher_profile_id UUID NOT NULL REFERENCES teacher_profiles(id),
			total_sessions INT NOT NULL,
			starts_at TIMESTAMP WITH TIME ZONE NOT NULL,
			ends_at TIMESTAMP WITH TIME ZONE NOT NULL,
			status TEXT NOT NULL DEFAULT 'active'
				CHECK (status IN ('active', 'expired', 'cancelled')),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE INDEX idx_academic_subscriptions_teacher ON academic_subscriptions(teacher_profile_id);
		CREATE INDEX idx_academic_subscriptions_student ON academic_subscriptions(student_id);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateAcademicSubscriptionsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS academic_subscriptions;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
