package repository

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/model"
	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/scheduling"
)

// SessionRepository is the read/write surface the scheduling core and the
// orchestrator need across the three session tables. It implements
// scheduling.SessionStore and scheduling.SessionCounter.
type SessionRepository interface {
	scheduling.SessionStore
	scheduling.SessionCounter

	CreateQuranBatch(ctx context.Context, teacherUserID uuid.UUID, sessions []model.QuranSession) ([]model.QuranSession, error)
	CreateAcademicBatch(ctx context.Context, teacherUserID uuid.UUID, sessions []model.AcademicSession) ([]model.AcademicSession, error)
	CreateCourseBatch(ctx context.Context, teacherUserID uuid.UUID, sessions []model.CourseSession) ([]model.CourseSession, error)

	// AcquireTeacherLock blocks until the per-teacher advisory lock is held
	// and returns the release func. The caller must hold it across the whole
	// conflict read plus insert, not just the insert, or two concurrent bulk
	// runs can both see a slot as free.
	AcquireTeacherLock(ctx context.Context, teacherUserID uuid.UUID) (release func(), err error)
}

type postgresSessionRepository struct {
	db *sqlx.DB
}

func NewPostgresSessionRepository(db *sqlx.DB) SessionRepository {
	return &postgresSessionRepository{db: db}
}

// overlapRow is the projection shared by the three overlap queries.
type overlapRow struct {
	ID              uuid.UUID `db:"id"`
	ScheduledAt     time.Time `db:"scheduled_at"`
	DurationMinutes int       `db:"duration_minutes"`
	Status          string    `db:"status"`
}

// FindOverlapping returns the first non-cancelled session in the category
// whose interval intersects the (already buffer-widened) window. The
// predicate mirrors scheduling.Overlaps: scheduled_at < windowEnd AND
// scheduled_at + duration > windowStart.
func (r *postgresSessionRepository) FindOverlapping(
	ctx context.Context,
	category scheduling.SessionCategory,
	teacherRef uuid.UUID,
	window scheduling.Window,
	excludeID uuid.UUID,
) (*scheduling.SessionRef, error) {
	table, teacherCol, err := sessionTable(category)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, scheduled_at, duration_minutes, status
		FROM %s
		WHERE %s = $1
		  AND status != 'cancelled'
		  AND id != $2
		  AND scheduled_at < $3
		  AND scheduled_at + make_interval(mins => duration_minutes) > $4
		ORDER BY scheduled_at
		LIMIT 1
	`, table, teacherCol)

	var row overlapRow
	err = r.db.GetContext(ctx, &row, query, teacherRef, excludeID, window.End, window.Start)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &scheduling.SessionRef{
		ID:              row.ID,
		ScheduledAt:     row.ScheduledAt,
		DurationMinutes: row.DurationMinutes,
		Status:          row.Status,
	}, nil
}

func sessionTable(category scheduling.SessionCategory) (table, teacherCol string, err error) {
	switch category {
	case scheduling.CategoryQuran:
		return "quran_sessions", "teacher_user_id", nil
	case scheduling.CategoryAcademic:
		return "academic_sessions", "teacher_profile_id", nil
	case scheduling.CategoryCourse:
		return "course_sessions", "teacher_profile_id", nil
	default:
		return "", "", fmt.Errorf("unknown session category %d", category)
	}
}

func (r *postgresSessionRepository) CountIndividualCircleUsed(ctx context.Context, circleID uuid.UUID) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM quran_sessions
		WHERE individual_circle_id = $1
		  AND status IN ('scheduled', 'ongoing', 'completed')
	`
	err := r.db.GetContext(ctx, &count, query, circleID)
	return count, err
}

func (r *postgresSessionRepository) CountIndividualCircleFutureScheduled(ctx context.Context, circleID uuid.UUID) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM quran_sessions
		WHERE individual_circle_id = $1
		  AND status = 'scheduled'
		  AND scheduled_at > NOW()
	`
	err := r.db.GetContext(ctx, &count, query, circleID)
	return count, err
}

func (r *postgresSessionRepository) CountAcademicSubscriptionUsed(ctx context.Context, subscriptionID uuid.UUID) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM academic_sessions
		WHERE subscription_id = $1
		  AND status IN ('scheduled', 'ongoing', 'completed')
	`
	err := r.db.GetContext(ctx, &count, query, subscriptionID)
	return count, err
}

func (r *postgresSessionRepository) CountAcademicSubscriptionFutureScheduled(ctx context.Context, subscriptionID uuid.UUID) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM academic_sessions
		WHERE subscription_id = $1
		  AND status = 'scheduled'
		  AND scheduled_at > NOW()
	`
	err := r.db.GetContext(ctx, &count, query, subscriptionID)
	return count, err
}

func (r *postgresSessionRepository) CountCourseUsed(ctx context.Context, courseID uuid.UUID) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM course_sessions
		WHERE course_id = $1
		  AND status IN ('scheduled', 'ongoing', 'completed')
	`
	err := r.db.GetContext(ctx, &count, query, courseID)
	return count, err
}

func (r *postgresSessionRepository) CountCourseFutureScheduled(ctx context.Context, courseID uuid.UUID) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM course_sessions
		WHERE course_id = $1
		  AND status = 'scheduled'
		  AND scheduled_at > NOW()
	`
	err := r.db.GetContext(ctx, &count, query, courseID)
	return count, err
}

func (r *postgresSessionRepository) CountTrialSessions(ctx context.Context, trialRequestID uuid.UUID) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM quran_sessions
		WHERE trial_request_id = $1
		  AND status != 'cancelled'
	`
	err := r.db.GetContext(ctx, &count, query, trialRequestID)
	return count, err
}

func (r *postgresSessionRepository) CountGroupCircleMonth(ctx context.Context, circleID uuid.UUID, monthStart time.Time) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM quran_sessions
		WHERE circle_id = $1
		  AND status != 'cancelled'
		  AND scheduled_at >= $2
		  AND scheduled_at < $2 + INTERVAL '1 month'
	`
	err := r.db.GetContext(ctx, &count, query, circleID, monthStart)
	return count, err
}

// CreateQuranBatch inserts sessions inside one transaction. Per-teacher
// serialization is the caller's job via AcquireTeacherLock, held from the
// conflict read through this write.
func (r *postgresSessionRepository) CreateQuranBatch(ctx context.Context, teacherUserID uuid.UUID, sessions []model.QuranSession) ([]model.QuranSession, error) {
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO quran_sessions
				(teacher_user_id, session_type, circle_id, individual_circle_id, trial_request_id,
				 session_code, title, scheduled_at, duration_minutes, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, created_at
		`
		for i := range sessions {
			s := &sessions[i]
			row := tx.QueryRowxContext(ctx, query,
				s.TeacherUserID, s.SessionType, s.CircleID, s.IndividualCircleID, s.TrialRequestID,
				s.SessionCode, s.Title, s.ScheduledAt, s.DurationMinutes, s.Status,
			)
			if err := row.Scan(&s.ID, &s.CreatedAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *postgresSessionRepository) CreateAcademicBatch(ctx context.Context, teacherUserID uuid.UUID, sessions []model.AcademicSession) ([]model.AcademicSession, error) {
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO academic_sessions
				(teacher_profile_id, subscription_id, session_code, title, scheduled_at, duration_minutes, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at
		`
		for i := range sessions {
			s := &sessions[i]
			row := tx.QueryRowxContext(ctx, query,
				s.TeacherProfileID, s.SubscriptionID, s.SessionCode, s.Title,
				s.ScheduledAt, s.DurationMinutes, s.Status,
			)
			if err := row.Scan(&s.ID, &s.CreatedAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *postgresSessionRepository) CreateCourseBatch(ctx context.Context, teacherUserID uuid.UUID, sessions []model.CourseSession) ([]model.CourseSession, error) {
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO course_sessions
				(teacher_profile_id, course_id, session_code, title, scheduled_at, duration_minutes, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at
		`
		for i := range sessions {
			s := &sessions[i]
			row := tx.QueryRowxContext(ctx, query,
				s.TeacherProfileID, s.CourseID, s.SessionCode, s.Title,
				s.ScheduledAt, s.DurationMinutes, s.Status,
			)
			if err := row.Scan(&s.ID, &s.CreatedAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *postgresSessionRepository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// AcquireTeacherLock takes a session-level advisory lock on a dedicated
// pooled connection. Session-level (not transaction-level) because it has
// to outlive the conflict-detection reads that run before any transaction
// opens. The release func unlocks and returns the connection to the pool.
func (r *postgresSessionRepository) AcquireTeacherLock(ctx context.Context, teacherUserID uuid.UUID) (func(), error) {
	conn, err := r.db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	key := teacherLockKey(teacherUserID)
	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, key); err != nil {
		conn.Close()
		return nil, err
	}
	release := func() {
		// Unlock on a fresh context: the request context may already be done.
		conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, key)
		conn.Close()
	}
	return release, nil
}

// teacherLockKey folds the teacher's user id into the int64 keyspace of
// pg_advisory_lock.
func teacherLockKey(teacherUserID uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write(teacherUserID[:])
	return int64(h.Sum64())
}
