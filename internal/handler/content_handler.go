package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillmint/skillmint-api/internal/dto"
	"github.com/skillmint/skillmint-api/internal/middleware"
	"github.com/skillmint/skillmint-api/internal/models"
	appErrors "github.com/skillmint/skillmint-api/pkg/errors"
	"github.com/skillmint/skillmint-api/pkg/response"
)

type contentService interface {
	LoadSessions(ctx context.Context, courseID string) ([]models.Session, error)
	LoadFiles(ctx context.Context, sessionID string) ([]models.CodeFile, error)
	LoadCourseTree(ctx context.Context, courseID string) (*dto.CourseTree, bool, error)
	CreateSession(ctx context.Context, courseID string, req *dto.CreateSessionRequest, actor *models.JWTClaims) (*models.Session, error)
	UpdateSession(ctx context.Context, sessionID string, req *dto.UpdateSessionRequest, actor *models.JWTClaims) (*models.Session, error)
	DeleteSession(ctx context.Context, sessionID string, confirm bool, actor *models.JWTClaims) error
	CreateCodeFile(ctx context.Context, sessionID string, req *dto.CreateCodeFileRequest, actor *models.JWTClaims) (*models.CodeFile, error)
	UpdateCodeFile(ctx context.Context, fileID string, req *dto.UpdateCodeFileRequest, actor *models.JWTClaims) (*models.CodeFile, error)
	DeleteCodeFile(ctx context.Context, fileID string, actor *models.JWTClaims) error
	SuggestLanguage(fileName string) string
}

type accessResolver interface {
	Resolve(ctx context.Context, userID, courseID string) (*models.AccessState, error)
}

type workspaceNotifier interface {
	DropSession(sessionID string)
	DropFile(fileID string)
}

// ContentHandler exposes the course content tree and the admin editor.
type ContentHandler struct {
	service    contentService
	access     accessResolver
	workspaces workspaceNotifier
}

// NewContentHandler builds a new handler.
func NewContentHandler(service contentService, access accessResolver, workspaces workspaceNotifier) *ContentHandler {
	return &ContentHandler{service: service, access: access, workspaces: workspaces}
}

// Tree godoc
// @Summary Load the full session/file tree for a course
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/tree [get]
func (h *ContentHandler) Tree(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	courseID := c.Param("id")

	if claims.Role != models.RoleAdmin {
		state, err := h.access.Resolve(c.Request.Context(), claims.UserID, courseID)
		if err != nil {
			response.Error(c, err)
			return
		}
		if !state.HasAccess {
			response.Error(c, appErrors.ErrAccessDenied)
			return
		}
	}

	tree, hit, err := h.service.LoadCourseTree(c.Request.Context(), courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, tree, nil, middleware.ExtractMeta(c))
}

// SuggestLanguage godoc
// @Summary Suggest an editor language tag for a file name
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Param fileName query string true "File name being typed in the admin form"
// @Success 200 {object} response.Envelope
// @Router /admin/language [get]
func (h *ContentHandler) SuggestLanguage(c *gin.Context) {
	fileName := strings.TrimSpace(c.Query("fileName"))
	if fileName == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "fileName query parameter is required"))
		return
	}
	suggestion := dto.LanguageSuggestion{
		FileName: fileName,
		Language: h.service.SuggestLanguage(fileName),
	}
	response.JSON(c, http.StatusOK, suggestion, nil)
}

// ListSessions godoc
// @Summary List sessions of a course
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /admin/courses/{id}/sessions [get]
func (h *ContentHandler) ListSessions(c *gin.Context) {
	sessions, err := h.service.LoadSessions(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions, nil)
}

// CreateSession godoc
// @Summary Add a session to a course
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param payload body dto.CreateSessionRequest true "Session payload"
// @Success 201 {object} response.Envelope
// @Router /admin/courses/{id}/sessions [post]
func (h *ContentHandler) CreateSession(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session payload"))
		return
	}

	session, err := h.service.CreateSession(c.Request.Context(), c.Param("id"), &req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

// UpdateSession godoc
// @Summary Edit a session
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param payload body dto.UpdateSessionRequest true "Session payload"
// @Success 200 {object} response.Envelope
// @Router /admin/sessions/{id} [put]
func (h *ContentHandler) UpdateSession(c *gin.Context) {
	var req dto.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session payload"))
		return
	}

	session, err := h.service.UpdateSession(c.Request.Context(), c.Param("id"), &req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session, nil)
}

// DeleteSession godoc
// @Summary Delete a session and its code files
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param confirm query bool true "Must be true to acknowledge the cascade"
// @Success 204 "No Content"
// @Router /admin/sessions/{id} [delete]
func (h *ContentHandler) DeleteSession(c *gin.Context) {
	sessionID := c.Param("id")
	confirm, _ := strconv.ParseBool(c.Query("confirm"))

	if err := h.service.DeleteSession(c.Request.Context(), sessionID, confirm, claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	if h.workspaces != nil {
		h.workspaces.DropSession(sessionID)
	}
	response.NoContent(c)
}

// ListFiles godoc
// @Summary List code files of a session
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /admin/sessions/{id}/files [get]
func (h *ContentHandler) ListFiles(c *gin.Context) {
	files, err := h.service.LoadFiles(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, files, nil)
}

// CreateFile godoc
// @Summary Attach a code file to a session
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param payload body dto.CreateCodeFileRequest true "Code file payload"
// @Success 201 {object} response.Envelope
// @Router /admin/sessions/{id}/files [post]
func (h *ContentHandler) CreateFile(c *gin.Context) {
	var req dto.CreateCodeFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid code file payload"))
		return
	}

	file, err := h.service.CreateCodeFile(c.Request.Context(), c.Param("id"), &req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, file)
}

// UpdateFile godoc
// @Summary Edit a code file
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "File ID"
// @Param payload body dto.UpdateCodeFileRequest true "Code file payload"
// @Success 200 {object} response.Envelope
// @Router /admin/files/{id} [put]
func (h *ContentHandler) UpdateFile(c *gin.Context) {
	var req dto.UpdateCodeFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid code file payload"))
		return
	}

	file, err := h.service.UpdateCodeFile(c.Request.Context(), c.Param("id"), &req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, file, nil)
}

// DeleteFile godoc
// @Summary Delete a code file
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Param id path string true "File ID"
// @Success 204 "No Content"
// @Router /admin/files/{id} [delete]
func (h *ContentHandler) DeleteFile(c *gin.Context) {
	fileID := c.Param("id")
	if err := h.service.DeleteCodeFile(c.Request.Context(), fileID, claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	if h.workspaces != nil {
		h.workspaces.DropFile(fileID)
	}
	response.NoContent(c)
}
