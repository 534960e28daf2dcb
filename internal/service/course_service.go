package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/skillmint/skillmint-api/internal/models"
	appErrors "github.com/skillmint/skillmint-api/pkg/errors"
)

const catalogCacheKey = "courses:catalog"

type courseStore interface {
	List(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

// CourseService serves the course catalog.
type CourseService struct {
	repo       courseStore
	cache      contentCache
	metrics    cacheMetrics
	logger     *zap.Logger
	catalogTTL time.Duration
}

// NewCourseService constructs a CourseService instance.
func NewCourseService(repo courseStore, cache contentCache, metrics cacheMetrics, logger *zap.Logger, catalogTTL time.Duration) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, cache: cache, metrics: metrics, logger: logger, catalogTTL: catalogTTL}
}

// List returns the course catalog, newest first. The catalog changes rarely
// and is cached as a whole.
func (s *CourseService) List(ctx context.Context) ([]models.Course, bool, error) {
	if s.cache != nil {
		var cached []models.Course
		if err := s.cache.Get(ctx, catalogCacheKey, &cached); err == nil {
			if s.metrics != nil {
				s.metrics.RecordCacheOperation(true)
			}
			return cached, true, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("course catalog cache read failed", zap.Error(err))
		}
		if s.metrics != nil {
			s.metrics.RecordCacheOperation(false)
		}
	}

	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, catalogCacheKey, courses, s.catalogTTL); err != nil {
			s.logger.Warn("course catalog cache write failed", zap.Error(err))
		}
	}

	return courses, false, nil
}

// Get returns a single course by id.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}
