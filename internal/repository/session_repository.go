package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skillmint/skillmint-api/internal/models"
)

// SessionRepository provides persistence for course sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new instance of SessionRepository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, course_id, session_number, topic, video_url, created_at, updated_at`

// ListByCourse returns a course's sessions ordered by session number.
func (r *SessionRepository) ListByCourse(ctx context.Context, courseID string) ([]models.Session, error) {
	const query = `SELECT ` + sessionColumns + ` FROM course_sessions WHERE course_id = $1 ORDER BY session_number ASC`
	sessions := []models.Session{}
	if err := r.db.SelectContext(ctx, &sessions, query, courseID); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// FindByID returns a session by identifier.
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*models.Session, error) {
	const query = `SELECT ` + sessionColumns + ` FROM course_sessions WHERE id = $1 LIMIT 1`
	var session models.Session
	if err := r.db.GetContext(ctx, &session, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find session by id: %w", err)
	}
	return &session, nil
}

// Create inserts a session. Duplicate session numbers within the course
// surface as a unique constraint violation.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now
	const query = `INSERT INTO course_sessions (id, course_id, session_number, topic, video_url, created_at, updated_at) VALUES (:id, :course_id, :session_number, :topic, :video_url, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return err
	}
	return nil
}

// Update edits a session's mutable fields and returns the stored row.
func (r *SessionRepository) Update(ctx context.Context, session *models.Session) (*models.Session, error) {
	const query = `UPDATE course_sessions SET session_number = $2, topic = $3, video_url = $4, updated_at = $5 WHERE id = $1 RETURNING ` + sessionColumns
	var updated models.Session
	if err := r.db.GetContext(ctx, &updated, query, session.ID, session.SessionNumber, session.Topic, session.VideoURL, time.Now().UTC()); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a session. Code files cascade at the database level.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM course_sessions WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
