package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/skillmint/skillmint-api/internal/dto"
	"github.com/skillmint/skillmint-api/internal/models"
	"github.com/skillmint/skillmint-api/pkg/database"
	appErrors "github.com/skillmint/skillmint-api/pkg/errors"
)

const (
	treeCacheKeyFormat = "tree:%s"
	sessionResource    = "course_session"
	codeFileResource   = "session_code_file"
)

// maxTreeFetchConcurrency caps parallel per-session file queries so a course
// with many sessions cannot exhaust the connection pool.
const maxTreeFetchConcurrency = 8

type sessionStore interface {
	ListByCourse(ctx context.Context, courseID string) ([]models.Session, error)
	FindByID(ctx context.Context, id string) (*models.Session, error)
	Create(ctx context.Context, session *models.Session) error
	Update(ctx context.Context, session *models.Session) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

type codeFileStore interface {
	ListBySession(ctx context.Context, sessionID string) ([]models.CodeFile, error)
	FindByID(ctx context.Context, id string) (*models.CodeFile, error)
	Create(ctx context.Context, file *models.CodeFile) error
	Update(ctx context.Context, file *models.CodeFile) (*models.CodeFile, error)
	Delete(ctx context.Context, id string) error
}

type contentCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type cacheMetrics interface {
	RecordCacheOperation(hit bool)
}

// ContentService loads the session/file hierarchy for learners and performs
// the admin editing operations on it.
type ContentService struct {
	sessions sessionStore
	files    codeFileStore
	courses  accessCourseReader
	cache    contentCache
	audit    auditLogger
	metrics  cacheMetrics
	validate *validator.Validate
	logger   *zap.Logger
	treeTTL  time.Duration
}

// NewContentService constructs a ContentService instance.
func NewContentService(sessions sessionStore, files codeFileStore, courses accessCourseReader, cache contentCache, audit auditLogger, metrics cacheMetrics, logger *zap.Logger, treeTTL time.Duration) *ContentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService{
		sessions: sessions,
		files:    files,
		courses:  courses,
		cache:    cache,
		audit:    audit,
		metrics:  metrics,
		validate: validator.New(),
		logger:   logger,
		treeTTL:  treeTTL,
	}
}

// LoadSessions returns the sessions of a course ordered by session number.
func (s *ContentService) LoadSessions(ctx context.Context, courseID string) ([]models.Session, error) {
	sessions, err := s.sessions.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sessions")
	}
	sortSessions(sessions)
	return sessions, nil
}

// LoadFiles returns the code files of a session ordered by file name.
func (s *ContentService) LoadFiles(ctx context.Context, sessionID string) ([]models.CodeFile, error) {
	files, err := s.files.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load code files")
	}
	sortCodeFiles(files)
	return files, nil
}

// LoadCourseTree assembles the full session/file hierarchy for a course. The
// session list is loaded first; file lists are then fetched concurrently, one
// goroutine per session, and the first failure cancels the remaining fetches.
// Assembled trees are cached; any mutation on the course invalidates the entry.
func (s *ContentService) LoadCourseTree(ctx context.Context, courseID string) (*dto.CourseTree, bool, error) {
	cacheKey := fmt.Sprintf(treeCacheKeyFormat, courseID)
	if s.cache != nil {
		var cached dto.CourseTree
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			if s.metrics != nil {
				s.metrics.RecordCacheOperation(true)
			}
			return &cached, true, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("course tree cache read failed", zap.String("course_id", courseID), zap.Error(err))
		}
		if s.metrics != nil {
			s.metrics.RecordCacheOperation(false)
		}
	}

	sessions, err := s.LoadSessions(ctx, courseID)
	if err != nil {
		return nil, false, err
	}

	tree := &dto.CourseTree{
		Sessions:       sessions,
		FilesBySession: make(map[string][]models.CodeFile, len(sessions)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxTreeFetchConcurrency)
	var mu sync.Mutex
	for _, session := range sessions {
		sessionID := session.ID
		g.Go(func() error {
			files, err := s.files.ListBySession(gctx, sessionID)
			if err != nil {
				return fmt.Errorf("load files for session %s: %w", sessionID, err)
			}
			sortCodeFiles(files)
			mu.Lock()
			tree.FilesBySession[sessionID] = files
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assemble course tree")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, tree, s.treeTTL); err != nil {
			s.logger.Warn("course tree cache write failed", zap.String("course_id", courseID), zap.Error(err))
		}
	}

	return tree, false, nil
}

// CreateSession adds a session to a course after validating the payload.
func (s *ContentService) CreateSession(ctx context.Context, courseID string, req *dto.CreateSessionRequest, actor *models.JWTClaims) (*models.Session, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	if strings.TrimSpace(req.Topic) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "topic must not be blank")
	}
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	session := &models.Session{
		CourseID:      courseID,
		SessionNumber: req.SessionNumber,
		Topic:         strings.TrimSpace(req.Topic),
		VideoURL:      req.VideoURL,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "a session with this number already exists in the course")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}

	s.invalidateTree(ctx, courseID)
	s.emitAudit(ctx, actor, models.AuditActionSessionCreate, sessionResource, session.ID)
	return session, nil
}

// UpdateSession edits an existing session.
func (s *ContentService) UpdateSession(ctx context.Context, sessionID string, req *dto.UpdateSessionRequest, actor *models.JWTClaims) (*models.Session, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	if strings.TrimSpace(req.Topic) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "topic must not be blank")
	}

	current, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}

	current.SessionNumber = req.SessionNumber
	current.Topic = strings.TrimSpace(req.Topic)
	current.VideoURL = req.VideoURL

	updated, err := s.sessions.Update(ctx, current)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "a session with this number already exists in the course")
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update session")
	}

	s.invalidateTree(ctx, updated.CourseID)
	s.emitAudit(ctx, actor, models.AuditActionSessionUpdate, sessionResource, updated.ID)
	return updated, nil
}

// DeleteSession removes a session and, through the database cascade, all of
// its code files. The caller must pass confirm=true; without it the delete is
// refused so the client can present the cascade warning first.
func (s *ContentService) DeleteSession(ctx context.Context, sessionID string, confirm bool, actor *models.JWTClaims) error {
	if !confirm {
		return appErrors.Clone(appErrors.ErrConfirmRequired, "deleting a session removes all of its code files; retry with confirm=true")
	}

	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete session")
	}

	s.invalidateTree(ctx, session.CourseID)
	s.emitAudit(ctx, actor, models.AuditActionSessionDelete, sessionResource, sessionID)
	return nil
}

// CreateCodeFile attaches a code file to a session. File names must carry an
// extension and must not contain path separators; the language tag must be a
// supported one. Nothing is written when validation fails.
func (s *ContentService) CreateCodeFile(ctx context.Context, sessionID string, req *dto.CreateCodeFileRequest, actor *models.JWTClaims) (*models.CodeFile, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid code file payload")
	}
	if err := validateFileName(req.FileName); err != nil {
		return nil, err
	}
	if !IsSupportedLanguage(req.Language) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported language %q", req.Language))
	}

	if _, err := s.sessions.FindByID(ctx, sessionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}

	file := &models.CodeFile{
		SessionID:   sessionID,
		FileName:    strings.TrimSpace(req.FileName),
		FileContent: req.FileContent,
		Language:    req.Language,
	}
	if err := s.files.Create(ctx, file); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "a file with this name already exists in the session")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create code file")
	}

	s.invalidateTreeForSession(ctx, sessionID)
	s.emitAudit(ctx, actor, models.AuditActionCodeFileCreate, codeFileResource, file.ID)
	return file, nil
}

// UpdateCodeFile edits an existing code file.
func (s *ContentService) UpdateCodeFile(ctx context.Context, fileID string, req *dto.UpdateCodeFileRequest, actor *models.JWTClaims) (*models.CodeFile, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid code file payload")
	}
	if err := validateFileName(req.FileName); err != nil {
		return nil, err
	}
	if !IsSupportedLanguage(req.Language) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported language %q", req.Language))
	}

	current, err := s.files.FindByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "code file not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load code file")
	}

	current.FileName = strings.TrimSpace(req.FileName)
	current.FileContent = req.FileContent
	current.Language = req.Language

	updated, err := s.files.Update(ctx, current)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "a file with this name already exists in the session")
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "code file not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update code file")
	}

	s.invalidateTreeForSession(ctx, updated.SessionID)
	s.emitAudit(ctx, actor, models.AuditActionCodeFileUpdate, codeFileResource, updated.ID)
	return updated, nil
}

// DeleteCodeFile removes a code file.
func (s *ContentService) DeleteCodeFile(ctx context.Context, fileID string, actor *models.JWTClaims) error {
	file, err := s.files.FindByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "code file not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load code file")
	}

	if err := s.files.Delete(ctx, fileID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "code file not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete code file")
	}

	s.invalidateTreeForSession(ctx, file.SessionID)
	s.emitAudit(ctx, actor, models.AuditActionCodeFileDelete, codeFileResource, fileID)
	return nil
}

// GetCodeFile returns a single code file by id.
func (s *ContentService) GetCodeFile(ctx context.Context, fileID string) (*models.CodeFile, error) {
	file, err := s.files.FindByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "code file not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load code file")
	}
	return file, nil
}

// SuggestLanguage derives the advisory language tag for a file name so the
// admin form can prefill the language field while the name is typed. The tag
// actually stored on the file remains whatever the admin submits.
func (s *ContentService) SuggestLanguage(fileName string) string {
	return DetectLanguage(fileName)
}

// GetSession returns a single session by id.
func (s *ContentService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	return session, nil
}

func (s *ContentService) invalidateTree(ctx context.Context, courseID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, fmt.Sprintf(treeCacheKeyFormat, courseID)); err != nil {
		s.logger.Warn("course tree cache invalidation failed", zap.String("course_id", courseID), zap.Error(err))
	}
}

// invalidateTreeForSession resolves the owning course for a session mutation
// before dropping the cached tree. If the lookup fails the whole tree
// namespace is flushed rather than serving stale content.
func (s *ContentService) invalidateTreeForSession(ctx context.Context, sessionID string) {
	if s.cache == nil {
		return
	}
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if err := s.cache.DeleteByPattern(ctx, "tree:*"); err != nil {
			s.logger.Warn("course tree cache flush failed", zap.Error(err))
		}
		return
	}
	s.invalidateTree(ctx, session.CourseID)
}

func (s *ContentService) emitAudit(ctx context.Context, actor *models.JWTClaims, action, resource, resourceID string) {
	if s.audit == nil {
		return
	}
	var userID *string
	if actor != nil {
		userID = &actor.UserID
	}
	log := &models.AuditLog{
		UserID:     userID,
		Action:     action,
		Resource:   resource,
		ResourceID: &resourceID,
		IPAddress:  "system",
		UserAgent:  "content-service",
	}
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to record content audit", zap.Error(err))
	}
}

func validateFileName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return appErrors.Clone(appErrors.ErrValidation, "file name must not be blank")
	}
	if strings.ContainsAny(trimmed, "/\\") {
		return appErrors.Clone(appErrors.ErrValidation, "file name must not contain path separators")
	}
	idx := strings.LastIndex(trimmed, ".")
	if idx <= 0 || idx == len(trimmed)-1 {
		return appErrors.Clone(appErrors.ErrValidation, "file name must include an extension")
	}
	return nil
}

func sortSessions(sessions []models.Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].SessionNumber < sessions[j].SessionNumber
	})
}

func sortCodeFiles(files []models.CodeFile) {
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].FileName < files[j].FileName
	})
}
