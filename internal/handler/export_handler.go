package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/skillmint/skillmint-api/internal/dto"
	"github.com/skillmint/skillmint-api/pkg/response"
)

type exportService interface {
	AccessRequestsCSV(ctx context.Context, filter dto.AccessRequestFilter) ([]byte, string, error)
	CourseOutlinePDF(ctx context.Context, courseID string) ([]byte, string, error)
}

// ExportHandler serves admin file exports.
type ExportHandler struct {
	service exportService
}

// NewExportHandler builds a new handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// AccessRequests godoc
// @Summary Export access requests as CSV
// @Tags Exports
// @Produce text/csv
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param courseId query string false "Course ID filter"
// @Success 200 {file} binary
// @Router /admin/access-requests/export [get]
func (h *ExportHandler) AccessRequests(c *gin.Context) {
	filter := dto.AccessRequestFilter{
		Status:   c.Query("status"),
		CourseID: c.Query("courseId"),
	}

	payload, fileName, err := h.service.AccessRequestsCSV(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, fileName, "text/csv", payload)
}

// CourseOutline godoc
// @Summary Export a course outline as PDF
// @Tags Exports
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {file} binary
// @Router /admin/courses/{id}/outline.pdf [get]
func (h *ExportHandler) CourseOutline(c *gin.Context) {
	payload, fileName, err := h.service.CourseOutlinePDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, fileName, "application/pdf", payload)
}
