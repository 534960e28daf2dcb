package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/skillmint/skillmint-api/internal/dto"
	"github.com/skillmint/skillmint-api/internal/models"
	"github.com/skillmint/skillmint-api/pkg/database"
	appErrors "github.com/skillmint/skillmint-api/pkg/errors"
)

const accessResource = "course_access_request"

type accessRequestStore interface {
	FindByUserAndCourse(ctx context.Context, userID, courseID string) (*models.AccessRequest, error)
	Create(ctx context.Context, req *models.AccessRequest) error
	UpdateStatus(ctx context.Context, id string, status models.AccessStatus) (*models.AccessRequest, error)
	List(ctx context.Context, filter dto.AccessRequestFilter) ([]dto.PendingRequestItem, error)
}

type accessCourseReader interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

type auditLogger interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// AccessService is the access gate: it resolves a learner's access state for
// a course and drives the request/approve/reject workflow.
type AccessService struct {
	repo    accessRequestStore
	courses accessCourseReader
	audit   auditLogger
	logger  *zap.Logger
}

// NewAccessService constructs an AccessService instance.
func NewAccessService(repo accessRequestStore, courses accessCourseReader, audit auditLogger, logger *zap.Logger) *AccessService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccessService{repo: repo, courses: courses, audit: audit, logger: logger}
}

// Resolve computes the access state for a (user, course) pair. The absence of
// a request record is a valid outcome, not an error.
func (s *AccessService) Resolve(ctx context.Context, userID, courseID string) (*models.AccessState, error) {
	req, err := s.repo.FindByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.AccessState{}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve course access")
	}

	return &models.AccessState{
		HasRequested: true,
		HasAccess:    req.Status == models.AccessApproved,
		Status:       req.Status,
		RequestID:    req.ID,
	}, nil
}

// Request creates a pending access request for the course. The unique
// constraint on (user, course) makes a second request a conflict; a rejected
// request is terminal and cannot be re-requested.
func (s *AccessService) Request(ctx context.Context, userID, courseID string) (*models.AccessState, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	req := &models.AccessRequest{
		UserID:   userID,
		CourseID: courseID,
		Status:   models.AccessPending,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrDuplicateRequest, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access request")
	}

	s.emitAudit(ctx, &userID, models.AuditActionAccessRequest, req.ID, req.Status)

	return &models.AccessState{
		HasRequested: true,
		Status:       req.Status,
		RequestID:    req.ID,
	}, nil
}

// Approve grants a request. Re-approving an approved request is a no-op that
// returns the same approved record.
func (s *AccessService) Approve(ctx context.Context, requestID string, actor *models.JWTClaims) (*models.AccessRequest, error) {
	return s.decide(ctx, requestID, models.AccessApproved, models.AuditActionAccessApprove, actor)
}

// Reject denies a request.
func (s *AccessService) Reject(ctx context.Context, requestID string, actor *models.JWTClaims) (*models.AccessRequest, error) {
	return s.decide(ctx, requestID, models.AccessRejected, models.AuditActionAccessReject, actor)
}

func (s *AccessService) decide(ctx context.Context, requestID string, status models.AccessStatus, action string, actor *models.JWTClaims) (*models.AccessRequest, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}

	req, err := s.repo.UpdateStatus(ctx, requestID, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "access request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update access request")
	}

	s.emitAudit(ctx, &actor.UserID, action, req.ID, req.Status)
	return req, nil
}

// ListPending returns the admin review queue, optionally filtered.
func (s *AccessService) ListPending(ctx context.Context, filter dto.AccessRequestFilter, actor *models.JWTClaims) ([]dto.PendingRequestItem, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if filter.Status != "" && !models.AccessStatus(filter.Status).Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown status filter")
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list access requests")
	}
	return items, nil
}

func (s *AccessService) emitAudit(ctx context.Context, userID *string, action, requestID string, status models.AccessStatus) {
	if s.audit == nil {
		return
	}
	newValues, _ := json.Marshal(map[string]interface{}{"status": status})
	log := &models.AuditLog{
		UserID:     userID,
		Action:     action,
		Resource:   accessResource,
		ResourceID: &requestID,
		NewValues:  newValues,
		IPAddress:  "system",
		UserAgent:  "access-service",
	}
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to record access audit", zap.Error(err))
	}
}
