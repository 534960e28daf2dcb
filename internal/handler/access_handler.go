package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillmint/skillmint-api/internal/dto"
	"github.com/skillmint/skillmint-api/internal/models"
	appErrors "github.com/skillmint/skillmint-api/pkg/errors"
	"github.com/skillmint/skillmint-api/pkg/response"
)

type accessService interface {
	Resolve(ctx context.Context, userID, courseID string) (*models.AccessState, error)
	Request(ctx context.Context, userID, courseID string) (*models.AccessState, error)
	Approve(ctx context.Context, requestID string, actor *models.JWTClaims) (*models.AccessRequest, error)
	Reject(ctx context.Context, requestID string, actor *models.JWTClaims) (*models.AccessRequest, error)
	ListPending(ctx context.Context, filter dto.AccessRequestFilter, actor *models.JWTClaims) ([]dto.PendingRequestItem, error)
}

// AccessHandler exposes the course access gate endpoints.
type AccessHandler struct {
	service accessService
}

// NewAccessHandler builds a new handler.
func NewAccessHandler(service accessService) *AccessHandler {
	return &AccessHandler{service: service}
}

// Resolve godoc
// @Summary Resolve the caller's access state for a course
// @Tags Access
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/access [get]
func (h *AccessHandler) Resolve(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	state, err := h.service.Resolve(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}

// Request godoc
// @Summary Request access to a course
// @Tags Access
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 201 {object} response.Envelope
// @Router /courses/{id}/access [post]
func (h *AccessHandler) Request(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	state, err := h.service.Request(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, state)
}

// ListPending godoc
// @Summary List access requests for review
// @Tags Access
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter (pending, approved, rejected)"
// @Param courseId query string false "Course ID filter"
// @Success 200 {object} response.Envelope
// @Router /admin/access-requests [get]
func (h *AccessHandler) ListPending(c *gin.Context) {
	claims := claimsFromContext(c)
	filter := dto.AccessRequestFilter{
		Status:   c.Query("status"),
		CourseID: c.Query("courseId"),
	}

	items, err := h.service.ListPending(c.Request.Context(), filter, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Approve godoc
// @Summary Approve an access request
// @Tags Access
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Router /admin/access-requests/{id}/approve [post]
func (h *AccessHandler) Approve(c *gin.Context) {
	req, err := h.service.Approve(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, req, nil)
}

// Reject godoc
// @Summary Reject an access request
// @Tags Access
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Router /admin/access-requests/{id}/reject [post]
func (h *AccessHandler) Reject(c *gin.Context) {
	req, err := h.service.Reject(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, req, nil)
}
