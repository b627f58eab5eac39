package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateCourseSessionsTable, downCreateCourseSessionsTable)
}

func upCreateCourseSessionsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE course_sessions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			teacher_profile_id UUID NOT NULL REFERENCES teacher_profiles(id),
			course_id UUID NOT NULL REFERENCES interactive_courses(id) ON DELETE CASCADE,
			session_code TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL DEFAULT '',
			scheduled_at TIMESTAMP WITH TIME ZONE NOT NULL,
			duration_minutes INT NOT NULL DEFAULT 60,
			status TEXT NOT NULL DEFAULT 'scheduled'
				CHECK (status IN ('scheduled', 'ongoing', 'completed', 'cancelled', 'unscheduled')),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE INDEX idx_course_sessions_teacher_time ON course_sessions(teacher_profile_id, scheduled_at);
		CREATE INDEX idx_course_sessions_course ON course_sessions(course_id);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateCourseSessionsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS course_sessions;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
