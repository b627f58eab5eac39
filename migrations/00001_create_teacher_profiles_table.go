package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateTeacherProfilesTable, downCreateTeacherProfilesTable)
}

func upCreateTeacherProfilesTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE teacher_profiles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL,
			kind TEXT NOT NULL CHECK (kind IN ('quran', 'academic')),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
			UNIQUE (user_id, kind)
		);

		CREATE INDEX idx_teacher_profiles_user_id ON teacher_profiles(user_id);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateTeacherProfilesTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS teacher_profiles;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
