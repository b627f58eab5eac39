package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateGroupCirclesTable, downCreateGroupCirclesTable)
}

func upCreateGroupCirclesTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE group_circles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			teacher_user_id UUID NOT NULL,
			name_ar TEXT NOT NULL,
			monthly_sessions_count INT NOT NULL DEFAULT 8,
			max_students INT NOT NULL DEFAULT 20,
			enrolled_students_count INT NOT NULL DEFAULT 0,
			session_duration_minutes INT NOT NULL DEFAULT 60,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE INDEX idx_group_circles_teacher ON group_circles(teacher_user_id);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateGroupCirclesTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS group_circles;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
