package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillmint/skillmint-api/internal/dto"
	"github.com/skillmint/skillmint-api/internal/models"
	appErrors "github.com/skillmint/skillmint-api/pkg/errors"
)

type stubAccessStore struct {
	findResult   *models.AccessRequest
	findErr      error
	createErr    error
	createCalls  int
	updateResult *models.AccessRequest
	updateErr    error
	listResult   []dto.PendingRequestItem
	listErr      error
	listFilter   dto.AccessRequestFilter
}

func (s *stubAccessStore) FindByUserAndCourse(ctx context.Context, userID, courseID string) (*models.AccessRequest, error) {
	return s.findResult, s.findErr
}

func (s *stubAccessStore) Create(ctx context.Context, req *models.AccessRequest) error {
	s.createCalls++
	if s.createErr != nil {
		return s.createErr
	}
	req.ID = "req-new"
	return nil
}

func (s *stubAccessStore) UpdateStatus(ctx context.Context, id string, status models.AccessStatus) (*models.AccessRequest, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	if s.updateResult != nil {
		return s.updateResult, nil
	}
	return &models.AccessRequest{ID: id, Status: status}, nil
}

func (s *stubAccessStore) List(ctx context.Context, filter dto.AccessRequestFilter) ([]dto.PendingRequestItem, error) {
	s.listFilter = filter
	return s.listResult, s.listErr
}

type stubCourseReader struct {
	course *models.Course
	err    error
}

func (s *stubCourseReader) FindByID(ctx context.Context, id string) (*models.Course, error) {
	return s.course, s.err
}

type stubAuditLogger struct {
	logs []*models.AuditLog
	err  error
}

func (s *stubAuditLogger) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	s.logs = append(s.logs, log)
	return s.err
}

func adminClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin}
}

func TestAccessServiceResolveNoRequest(t *testing.T) {
	store := &stubAccessStore{findErr: sql.ErrNoRows}
	svc := NewAccessService(store, &stubCourseReader{}, nil, nil)

	state, err := svc.Resolve(context.Background(), "user-1", "course-1")
	require.NoError(t, err)
	assert.False(t, state.HasRequested)
	assert.False(t, state.HasAccess)
	assert.Empty(t, state.Status)
}

func TestAccessServiceResolveApproved(t *testing.T) {
	store := &stubAccessStore{findResult: &models.AccessRequest{
		ID: "req-1", UserID: "user-1", CourseID: "course-1", Status: models.AccessApproved,
	}}
	svc := NewAccessService(store, &stubCourseReader{}, nil, nil)

	state, err := svc.Resolve(context.Background(), "user-1", "course-1")
	require.NoError(t, err)
	assert.True(t, state.HasRequested)
	assert.True(t, state.HasAccess)
	assert.Equal(t, models.AccessApproved, state.Status)
	assert.Equal(t, "req-1", state.RequestID)
}

func TestAccessServiceResolveRejected(t *testing.T) {
	store := &stubAccessStore{findResult: &models.AccessRequest{
		ID: "req-2", Status: models.AccessRejected,
	}}
	svc := NewAccessService(store, &stubCourseReader{}, nil, nil)

	state, err := svc.Resolve(context.Background(), "user-1", "course-1")
	require.NoError(t, err)
	assert.True(t, state.HasRequested)
	assert.False(t, state.HasAccess)
	assert.Equal(t, models.AccessRejected, state.Status)
}

func TestAccessServiceRequest(t *testing.T) {
	store := &stubAccessStore{}
	audit := &stubAuditLogger{}
	svc := NewAccessService(store, &stubCourseReader{course: &models.Course{ID: "course-1"}}, audit, nil)

	state, err := svc.Request(context.Background(), "user-1", "course-1")
	require.NoError(t, err)
	assert.True(t, state.HasRequested)
	assert.Equal(t, models.AccessPending, state.Status)
	assert.Equal(t, "req-new", state.RequestID)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionAccessRequest, audit.logs[0].Action)
}

func TestAccessServiceRequestDuplicate(t *testing.T) {
	store := &stubAccessStore{createErr: &pq.Error{Code: "23505"}}
	svc := NewAccessService(store, &stubCourseReader{course: &models.Course{ID: "course-1"}}, nil, nil)

	_, err := svc.Request(context.Background(), "user-1", "course-1")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrDuplicateRequest.Code, appErr.Code)
}

func TestAccessServiceRequestUnknownCourse(t *testing.T) {
	store := &stubAccessStore{}
	svc := NewAccessService(store, &stubCourseReader{err: sql.ErrNoRows}, nil, nil)

	_, err := svc.Request(context.Background(), "user-1", "course-missing")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Zero(t, store.createCalls)
}

func TestAccessServiceApprove(t *testing.T) {
	store := &stubAccessStore{}
	audit := &stubAuditLogger{}
	svc := NewAccessService(store, &stubCourseReader{}, audit, nil)

	req, err := svc.Approve(context.Background(), "req-1", adminClaims())
	require.NoError(t, err)
	assert.Equal(t, models.AccessApproved, req.Status)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionAccessApprove, audit.logs[0].Action)
}

func TestAccessServiceApproveTwice(t *testing.T) {
	store := &stubAccessStore{}
	svc := NewAccessService(store, &stubCourseReader{}, nil, nil)

	first, err := svc.Approve(context.Background(), "req-1", adminClaims())
	require.NoError(t, err)

	second, err := svc.Approve(context.Background(), "req-1", adminClaims())
	require.NoError(t, err)
	assert.Equal(t, models.AccessApproved, second.Status)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Status, second.Status)
}

func TestAccessServiceRejectMissing(t *testing.T) {
	store := &stubAccessStore{updateErr: sql.ErrNoRows}
	svc := NewAccessService(store, &stubCourseReader{}, nil, nil)

	_, err := svc.Reject(context.Background(), "req-9", adminClaims())
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestAccessServiceListPendingInvalidFilter(t *testing.T) {
	svc := NewAccessService(&stubAccessStore{}, &stubCourseReader{}, nil, nil)

	_, err := svc.ListPending(context.Background(), dto.AccessRequestFilter{Status: "granted"}, adminClaims())
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestAccessServiceListPending(t *testing.T) {
	store := &stubAccessStore{listResult: []dto.PendingRequestItem{
		{ID: "req-1", UserEmail: "a@example.com", CourseTitle: "React Basics", Status: string(models.AccessPending)},
	}}
	svc := NewAccessService(store, &stubCourseReader{}, nil, nil)

	items, err := svc.ListPending(context.Background(), dto.AccessRequestFilter{Status: string(models.AccessPending)}, adminClaims())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "React Basics", items[0].CourseTitle)
	assert.Equal(t, string(models.AccessPending), store.listFilter.Status)
}
