package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateInteractiveCoursesTable, downCreateInteractiveCoursesTable)
}

func upCreateInteractiveCoursesTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE interactive_courses (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			teacher_profile_id UUID NOT NULL REFERENCES teacher_profiles(id),
			teacher_user_id UUID NOT NULL,
			name_ar TEXT NOT NULL,
			total_sessions INT NOT NULL,
			duration_weeks INT NOT NULL DEFAULT 0,
			start_date TIMESTAMP WITH TIME ZONE,
			end_date TIMESTAMP WITH TIME ZONE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE INDEX idx_interactive_courses_teacher ON interactive_courses(teacher_profile_id);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateInteractiveCoursesTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS interactive_courses;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
