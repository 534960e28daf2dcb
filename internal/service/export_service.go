package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/skillmint/skillmint-api/internal/dto"
	"github.com/skillmint/skillmint-api/internal/models"
	"github.com/skillmint/skillmint-api/pkg/export"
	appErrors "github.com/skillmint/skillmint-api/pkg/errors"
)

type accessRequestLister interface {
	List(ctx context.Context, filter dto.AccessRequestFilter) ([]dto.PendingRequestItem, error)
}

type courseTreeLoader interface {
	LoadCourseTree(ctx context.Context, courseID string) (*dto.CourseTree, bool, error)
}

type courseGetter interface {
	Get(ctx context.Context, id string) (*models.Course, error)
}

// ExportService renders admin exports: the access request queue as CSV and
// per-course content outlines as PDF handouts.
type ExportService struct {
	requests accessRequestLister
	content  courseTreeLoader
	courses  courseGetter
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewExportService constructs an ExportService instance.
func NewExportService(requests accessRequestLister, content courseTreeLoader, courses courseGetter, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		requests: requests,
		content:  content,
		courses:  courses,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// AccessRequestsCSV renders the filtered access request queue as CSV.
func (s *ExportService) AccessRequestsCSV(ctx context.Context, filter dto.AccessRequestFilter) ([]byte, string, error) {
	items, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list access requests")
	}

	dataset := export.Dataset{
		Headers: []string{"Request ID", "User Email", "Course", "Status", "Requested At"},
		Rows:    make([]map[string]string, 0, len(items)),
	}
	for _, item := range items {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Request ID":   item.ID,
			"User Email":   item.UserEmail,
			"Course":       item.CourseTitle,
			"Status":       item.Status,
			"Requested At": item.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	payload, err := s.csv.Render(dataset)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
	}

	fileName := fmt.Sprintf("access-requests-%s.csv", time.Now().UTC().Format("20060102"))
	return payload, fileName, nil
}

// CourseOutlinePDF renders a course's session and file listing as a PDF.
func (s *ExportService) CourseOutlinePDF(ctx context.Context, courseID string) ([]byte, string, error) {
	course, err := s.courses.Get(ctx, courseID)
	if err != nil {
		return nil, "", err
	}

	tree, _, err := s.content.LoadCourseTree(ctx, courseID)
	if err != nil {
		return nil, "", err
	}

	sections := make([]export.OutlineSection, 0, len(tree.Sessions))
	for _, session := range tree.Sessions {
		section := export.OutlineSection{
			Heading: fmt.Sprintf("Session %d: %s", session.SessionNumber, session.Topic),
		}
		for _, file := range tree.FilesBySession[session.ID] {
			section.Items = append(section.Items, fmt.Sprintf("%s (%s)", file.FileName, file.Language))
		}
		sections = append(sections, section)
	}

	payload, err := s.pdf.RenderOutline(course.Title, sections)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render outline pdf")
	}

	fileName := fmt.Sprintf("course-outline-%s.pdf", courseID)
	return payload, fileName, nil
}
