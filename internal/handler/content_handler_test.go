package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillmint/skillmint-api/internal/dto"
	"github.com/skillmint/skillmint-api/internal/middleware"
	"github.com/skillmint/skillmint-api/internal/models"
	"github.com/skillmint/skillmint-api/internal/service"
	appErrors "github.com/skillmint/skillmint-api/pkg/errors"
)

type contentServiceMock struct {
	tree              *dto.CourseTree
	treeErr           error
	sessions          []models.Session
	files             []models.CodeFile
	createdSession    *models.Session
	createSessionErr  error
	deleteSessionErr  error
	createdFile       *models.CodeFile
	deleteFileErr     error
	lastConfirm       bool
	createSessCalled  bool
	deleteSessCalled  bool
	deleteFileCalled  bool
	lastDeletedFileID string
}

func (m *contentServiceMock) LoadSessions(ctx context.Context, courseID string) ([]models.Session, error) {
	return m.sessions, nil
}

func (m *contentServiceMock) LoadFiles(ctx context.Context, sessionID string) ([]models.CodeFile, error) {
	return m.files, nil
}

func (m *contentServiceMock) LoadCourseTree(ctx context.Context, courseID string) (*dto.CourseTree, bool, error) {
	return m.tree, false, m.treeErr
}

func (m *contentServiceMock) CreateSession(ctx context.Context, courseID string, req *dto.CreateSessionRequest, actor *models.JWTClaims) (*models.Session, error) {
	m.createSessCalled = true
	return m.createdSession, m.createSessionErr
}

func (m *contentServiceMock) UpdateSession(ctx context.Context, sessionID string, req *dto.UpdateSessionRequest, actor *models.JWTClaims) (*models.Session, error) {
	return m.createdSession, nil
}

func (m *contentServiceMock) DeleteSession(ctx context.Context, sessionID string, confirm bool, actor *models.JWTClaims) error {
	m.deleteSessCalled = true
	m.lastConfirm = confirm
	if !confirm {
		return appErrors.ErrConfirmRequired
	}
	return m.deleteSessionErr
}

func (m *contentServiceMock) CreateCodeFile(ctx context.Context, sessionID string, req *dto.CreateCodeFileRequest, actor *models.JWTClaims) (*models.CodeFile, error) {
	return m.createdFile, nil
}

func (m *contentServiceMock) UpdateCodeFile(ctx context.Context, fileID string, req *dto.UpdateCodeFileRequest, actor *models.JWTClaims) (*models.CodeFile, error) {
	return m.createdFile, nil
}

func (m *contentServiceMock) DeleteCodeFile(ctx context.Context, fileID string, actor *models.JWTClaims) error {
	m.deleteFileCalled = true
	m.lastDeletedFileID = fileID
	return m.deleteFileErr
}

func (m *contentServiceMock) SuggestLanguage(fileName string) string {
	return service.DetectLanguage(fileName)
}

type accessResolverMock struct {
	state  *models.AccessState
	err    error
	called bool
}

func (m *accessResolverMock) Resolve(ctx context.Context, userID, courseID string) (*models.AccessState, error) {
	m.called = true
	return m.state, m.err
}

type workspaceNotifierMock struct {
	droppedSessions []string
	droppedFiles    []string
}

func (m *workspaceNotifierMock) DropSession(sessionID string) {
	m.droppedSessions = append(m.droppedSessions, sessionID)
}

func (m *workspaceNotifierMock) DropFile(fileID string) {
	m.droppedFiles = append(m.droppedFiles, fileID)
}

func TestContentHandlerTreeApprovedLearner(t *testing.T) {
	mockSvc := &contentServiceMock{tree: &dto.CourseTree{Sessions: []models.Session{{ID: "sess-1"}}, FilesBySession: map[string][]models.CodeFile{}}}
	access := &accessResolverMock{state: &models.AccessState{HasRequested: true, HasAccess: true, Status: models.AccessApproved}}
	handler := NewContentHandler(mockSvc, access, nil)

	c, w := learnerContext(t, http.MethodGet, "/courses/course-1/tree")
	c.Params = gin.Params{{Key: "id", Value: "course-1"}}

	handler.Tree(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, access.called)
}

func TestContentHandlerTreePendingLearnerDenied(t *testing.T) {
	mockSvc := &contentServiceMock{}
	access := &accessResolverMock{state: &models.AccessState{HasRequested: true, HasAccess: false, Status: models.AccessPending}}
	handler := NewContentHandler(mockSvc, access, nil)

	c, w := learnerContext(t, http.MethodGet, "/courses/course-1/tree")
	c.Params = gin.Params{{Key: "id", Value: "course-1"}}

	handler.Tree(c)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestContentHandlerTreeAdminBypassesGate(t *testing.T) {
	mockSvc := &contentServiceMock{tree: &dto.CourseTree{FilesBySession: map[string][]models.CodeFile{}}}
	access := &accessResolverMock{}
	handler := NewContentHandler(mockSvc, access, nil)

	c, w := learnerContext(t, http.MethodGet, "/courses/course-1/tree")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})
	c.Params = gin.Params{{Key: "id", Value: "course-1"}}

	handler.Tree(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, access.called)
}

func TestContentHandlerCreateSession(t *testing.T) {
	mockSvc := &contentServiceMock{createdSession: &models.Session{ID: "sess-new", SessionNumber: 1, Topic: "Setup"}}
	handler := NewContentHandler(mockSvc, &accessResolverMock{}, nil)

	payload, _ := json.Marshal(dto.CreateSessionRequest{SessionNumber: 1, Topic: "Setup"})
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/admin/courses/course-1/sessions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})
	c.Params = gin.Params{{Key: "id", Value: "course-1"}}

	handler.CreateSession(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, mockSvc.createSessCalled)
}

func TestContentHandlerCreateSessionMalformedBody(t *testing.T) {
	mockSvc := &contentServiceMock{}
	handler := NewContentHandler(mockSvc, &accessResolverMock{}, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/admin/courses/course-1/sessions", bytes.NewBufferString(`{"topic":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})

	handler.CreateSession(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, mockSvc.createSessCalled)
}

func TestContentHandlerDeleteSessionWithoutConfirm(t *testing.T) {
	mockSvc := &contentServiceMock{}
	notifier := &workspaceNotifierMock{}
	handler := NewContentHandler(mockSvc, &accessResolverMock{}, notifier)

	c, w := learnerContext(t, http.MethodDelete, "/admin/sessions/sess-1")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})
	c.Params = gin.Params{{Key: "id", Value: "sess-1"}}

	handler.DeleteSession(c)
	require.Equal(t, http.StatusPreconditionRequired, w.Code)
	assert.False(t, mockSvc.lastConfirm)
	assert.Empty(t, notifier.droppedSessions)
}

func TestContentHandlerDeleteSessionConfirmed(t *testing.T) {
	mockSvc := &contentServiceMock{}
	notifier := &workspaceNotifierMock{}
	handler := NewContentHandler(mockSvc, &accessResolverMock{}, notifier)

	c, w := learnerContext(t, http.MethodDelete, "/admin/sessions/sess-1?confirm=true")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})
	c.Params = gin.Params{{Key: "id", Value: "sess-1"}}

	handler.DeleteSession(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, mockSvc.lastConfirm)
	assert.Equal(t, []string{"sess-1"}, notifier.droppedSessions)
}

func TestContentHandlerSuggestLanguage(t *testing.T) {
	handler := NewContentHandler(&contentServiceMock{}, &accessResolverMock{}, nil)

	c, w := learnerContext(t, http.MethodGet, "/admin/language?fileName=App.jsx")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})

	handler.SuggestLanguage(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.LanguageSuggestion `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "App.jsx", envelope.Data.FileName)
	assert.Equal(t, "javascript", envelope.Data.Language)
}

func TestContentHandlerSuggestLanguageMissingFileName(t *testing.T) {
	handler := NewContentHandler(&contentServiceMock{}, &accessResolverMock{}, nil)

	c, w := learnerContext(t, http.MethodGet, "/admin/language")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})

	handler.SuggestLanguage(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContentHandlerDeleteFileNotifiesWorkspaces(t *testing.T) {
	mockSvc := &contentServiceMock{}
	notifier := &workspaceNotifierMock{}
	handler := NewContentHandler(mockSvc, &accessResolverMock{}, notifier)

	c, w := learnerContext(t, http.MethodDelete, "/admin/files/file-1")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})
	c.Params = gin.Params{{Key: "id", Value: "file-1"}}

	handler.DeleteFile(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "file-1", mockSvc.lastDeletedFileID)
	assert.Equal(t, []string{"file-1"}, notifier.droppedFiles)
}
