package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillmint/skillmint-api/internal/middleware"
	"github.com/skillmint/skillmint-api/internal/models"
	"github.com/skillmint/skillmint-api/pkg/response"
)

type courseCatalogService interface {
	List(ctx context.Context) ([]models.Course, bool, error)
	Get(ctx context.Context, id string) (*models.Course, error)
}

// CourseHandler exposes the course catalog endpoints.
type CourseHandler struct {
	service courseCatalogService
}

// NewCourseHandler builds a new handler.
func NewCourseHandler(service courseCatalogService) *CourseHandler {
	return &CourseHandler{service: service}
}

// List godoc
// @Summary List available courses
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	courses, hit, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, courses, nil, middleware.ExtractMeta(c))
}

// Get godoc
// @Summary Get a single course
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}
