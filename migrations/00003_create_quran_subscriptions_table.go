package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateQuranSubscriptionsTable, downCreateQuranSubscriptionsTable)
}

func upCreateQuranSubscriptionsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE quran_subscriptions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL,
			total_sessions INT NOT NULL,
			starts_at TIMESTAMP WITH TIME ZONE NOT NULL,
			billing_cycle TEXT NOT NULL DEFAULT 'monthly'
				CHECK (billing_cycle IN ('weekly', 'monthly', 'quarterly', 'yearly')),
			status TEXT NOT NULL DEFAULT 'active'
				CHECK (status IN ('active', 'expired', 'cancelled')),
			deleted_at TIMESTAMP WITH TIME ZONE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE INDEX idx_quran_subscriptions_student ON quran_subscriptions(student_id);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateQuranSubscriptionsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS quran_subscriptions;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
