package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skillmint/skillmint-api/internal/dto"
	"github.com/skillmint/skillmint-api/internal/models"
)

// AccessRequestRepository provides persistence for course access requests.
type AccessRequestRepository struct {
	db *sqlx.DB
}

// NewAccessRequestRepository creates a new instance of AccessRequestRepository.
func NewAccessRequestRepository(db *sqlx.DB) *AccessRequestRepository {
	return &AccessRequestRepository{db: db}
}

const accessRequestColumns = `id, user_id, course_id, status, created_at, updated_at`

// FindByUserAndCourse returns the single request for a (user, course) pair.
// sql.ErrNoRows passes through so callers can treat it as "no request yet".
func (r *AccessRequestRepository) FindByUserAndCourse(ctx context.Context, userID, courseID string) (*models.AccessRequest, error) {
	const query = `SELECT ` + accessRequestColumns + ` FROM course_access_requests WHERE user_id = $1 AND course_id = $2 LIMIT 1`
	var req models.AccessRequest
	if err := r.db.GetContext(ctx, &req, query, userID, courseID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find access request: %w", err)
	}
	return &req, nil
}

// FindByID returns a request by identifier.
func (r *AccessRequestRepository) FindByID(ctx context.Context, id string) (*models.AccessRequest, error) {
	const query = `SELECT ` + accessRequestColumns + ` FROM course_access_requests WHERE id = $1 LIMIT 1`
	var req models.AccessRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find access request by id: %w", err)
	}
	return &req, nil
}

// Create inserts a new pending request. Unique constraint violations on the
// (user_id, course_id) pair bubble up for the caller to classify.
func (r *AccessRequestRepository) Create(ctx context.Context, req *models.AccessRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now
	const query = `INSERT INTO course_access_requests (id, user_id, course_id, status, created_at, updated_at) VALUES (:id, :user_id, :course_id, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, req); err != nil {
		return err
	}
	return nil
}

// UpdateStatus transitions a request and returns the updated row.
func (r *AccessRequestRepository) UpdateStatus(ctx context.Context, id string, status models.AccessStatus) (*models.AccessRequest, error) {
	const query = `UPDATE course_access_requests SET status = $2, updated_at = $3 WHERE id = $1 RETURNING ` + accessRequestColumns
	var req models.AccessRequest
	if err := r.db.GetContext(ctx, &req, query, id, status, time.Now().UTC()); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("update access request status: %w", err)
	}
	return &req, nil
}

// List returns requests joined with course title and requester email for the
// admin review queue, newest first.
func (r *AccessRequestRepository) List(ctx context.Context, filter dto.AccessRequestFilter) ([]dto.PendingRequestItem, error) {
	query := strings.Builder{}
	query.WriteString(`
SELECT
	ar.id,
	ar.user_id,
	u.email AS user_email,
	ar.course_id,
	c.title AS course_title,
	ar.status,
	ar.created_at,
	ar.updated_at
FROM course_access_requests ar
JOIN users u ON u.id = ar.user_id
JOIN courses c ON c.id = ar.course_id
WHERE 1=1`)

	var args []interface{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		fmt.Fprintf(&query, " AND ar.status = $%d", len(args))
	}
	if filter.CourseID != "" {
		args = append(args, filter.CourseID)
		fmt.Fprintf(&query, " AND ar.course_id = $%d", len(args))
	}
	query.WriteString("\nORDER BY ar.created_at DESC")

	items := []dto.PendingRequestItem{}
	if err := r.db.SelectContext(ctx, &items, query.String(), args...); err != nil {
		return nil, fmt.Errorf("list access requests: %w", err)
	}
	return items, nil
}
