package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillmint/skillmint-api/internal/dto"
	"github.com/skillmint/skillmint-api/internal/models"
	"github.com/skillmint/skillmint-api/internal/workspace"
	appErrors "github.com/skillmint/skillmint-api/pkg/errors"
	"github.com/skillmint/skillmint-api/pkg/response"
)

type contentReader interface {
	GetCodeFile(ctx context.Context, fileID string) (*models.CodeFile, error)
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
}

type workspaceManager interface {
	SelectVideo(userID, sessionID string) workspace.State
	Open(userID string, file *models.CodeFile) workspace.State
	Activate(userID, fileID string) workspace.State
	Edit(userID, fileID, content string) (workspace.State, error)
	Close(userID, fileID string) workspace.State
	File(userID, fileID string) (workspace.Tab, string, bool)
	Snapshot(userID string) workspace.State
}

// WorkspaceHandler exposes the per-user course viewing state: the selected
// session video and the open code file tabs.
type WorkspaceHandler struct {
	manager workspaceManager
	content contentReader
	access  accessResolver
}

// NewWorkspaceHandler builds a new handler.
func NewWorkspaceHandler(manager workspaceManager, content contentReader, access accessResolver) *WorkspaceHandler {
	return &WorkspaceHandler{manager: manager, content: content, access: access}
}

func (h *WorkspaceHandler) requireCourseAccess(c *gin.Context, claims *models.JWTClaims, courseID string) bool {
	if claims.Role == models.RoleAdmin {
		return true
	}
	state, err := h.access.Resolve(c.Request.Context(), claims.UserID, courseID)
	if err != nil {
		response.Error(c, err)
		return false
	}
	if !state.HasAccess {
		response.Error(c, appErrors.ErrAccessDenied)
		return false
	}
	return true
}

// State godoc
// @Summary Get the caller's workspace state
// @Tags Workspace
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /workspace [get]
func (h *WorkspaceHandler) State(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, h.manager.Snapshot(claims.UserID), nil)
}

// SelectVideo godoc
// @Summary Switch the viewer to a session's video
// @Tags Workspace
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SelectVideoRequest true "Session selection"
// @Success 200 {object} response.Envelope
// @Router /workspace/video [post]
func (h *WorkspaceHandler) SelectVideo(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.SelectVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "sessionId is required"))
		return
	}

	session, err := h.content.GetSession(c.Request.Context(), req.SessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !h.requireCourseAccess(c, claims, session.CourseID) {
		return
	}

	response.JSON(c, http.StatusOK, h.manager.SelectVideo(claims.UserID, session.ID), nil)
}

// OpenFile godoc
// @Summary Open a code file in a new tab
// @Tags Workspace
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.OpenFileRequest true "File to open"
// @Success 200 {object} response.Envelope
// @Router /workspace/files [post]
func (h *WorkspaceHandler) OpenFile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.OpenFileRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FileID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "fileId is required"))
		return
	}

	file, err := h.content.GetCodeFile(c.Request.Context(), req.FileID)
	if err != nil {
		response.Error(c, err)
		return
	}
	session, err := h.content.GetSession(c.Request.Context(), file.SessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !h.requireCourseAccess(c, claims, session.CourseID) {
		return
	}

	response.JSON(c, http.StatusOK, h.manager.Open(claims.UserID, file), nil)
}

// ActivateFile godoc
// @Summary Make an open tab the active one
// @Tags Workspace
// @Produce json
// @Security BearerAuth
// @Param fileId path string true "File ID"
// @Success 200 {object} response.Envelope
// @Router /workspace/files/{fileId}/activate [post]
func (h *WorkspaceHandler) ActivateFile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, h.manager.Activate(claims.UserID, c.Param("fileId")), nil)
}

// EditFile godoc
// @Summary Edit the working copy of the active file
// @Tags Workspace
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param fileId path string true "File ID"
// @Param payload body dto.EditFileRequest true "New content"
// @Success 200 {object} response.Envelope
// @Router /workspace/files/{fileId} [patch]
func (h *WorkspaceHandler) EditFile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.EditFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid edit payload"))
		return
	}

	state, err := h.manager.Edit(claims.UserID, c.Param("fileId"), req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}

// CloseFile godoc
// @Summary Close an open tab
// @Tags Workspace
// @Produce json
// @Security BearerAuth
// @Param fileId path string true "File ID"
// @Success 200 {object} response.Envelope
// @Router /workspace/files/{fileId} [delete]
func (h *WorkspaceHandler) CloseFile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, h.manager.Close(claims.UserID, c.Param("fileId")), nil)
}

// DownloadFile godoc
// @Summary Download the working copy of an open file
// @Tags Workspace
// @Produce octet-stream
// @Security BearerAuth
// @Param fileId path string true "File ID"
// @Success 200 {file} binary
// @Router /workspace/files/{fileId}/download [get]
func (h *WorkspaceHandler) DownloadFile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	tab, content, ok := h.manager.File(claims.UserID, c.Param("fileId"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "file is not open"))
		return
	}
	response.Attachment(c, tab.FileName, "text/plain; charset=utf-8", []byte(content))
}
