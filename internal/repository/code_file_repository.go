package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skillmint/skillmint-api/internal/models"
)

// CodeFileRepository provides persistence for session code files.
type CodeFileRepository struct {
	db *sqlx.DB
}

// NewCodeFileRepository creates a new instance of CodeFileRepository.
func NewCodeFileRepository(db *sqlx.DB) *CodeFileRepository {
	return &CodeFileRepository{db: db}
}

const codeFileColumns = `id, session_id, file_name, file_content, language, created_at, updated_at`

// ListBySession returns a session's code files ordered by file name.
func (r *CodeFileRepository) ListBySession(ctx context.Context, sessionID string) ([]models.CodeFile, error) {
	const query = `SELECT ` + codeFileColumns + ` FROM session_code_files WHERE session_id = $1 ORDER BY file_name ASC`
	files := []models.CodeFile{}
	if err := r.db.SelectContext(ctx, &files, query, sessionID); err != nil {
		return nil, fmt.Errorf("list code files: %w", err)
	}
	return files, nil
}

// FindByID returns a code file by identifier.
func (r *CodeFileRepository) FindByID(ctx context.Context, id string) (*models.CodeFile, error) {
	const query = `SELECT ` + codeFileColumns + ` FROM session_code_files WHERE id = $1 LIMIT 1`
	var file models.CodeFile
	if err := r.db.GetContext(ctx, &file, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find code file by id: %w", err)
	}
	return &file, nil
}

// Create inserts a code file. Duplicate file names within the session surface
// as a unique constraint violation.
func (r *CodeFileRepository) Create(ctx context.Context, file *models.CodeFile) error {
	if file.ID == "" {
		file.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	file.CreatedAt = now
	file.UpdatedAt = now
	const query = `INSERT INTO session_code_files (id, session_id, file_name, file_content, language, created_at, updated_at) VALUES (:id, :session_id, :file_name, :file_content, :language, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, file); err != nil {
		return err
	}
	return nil
}

// Update edits a code file and returns the stored row.
func (r *CodeFileRepository) Update(ctx context.Context, file *models.CodeFile) (*models.CodeFile, error) {
	const query = `UPDATE session_code_files SET file_name = $2, file_content = $3, language = $4, updated_at = $5 WHERE id = $1 RETURNING ` + codeFileColumns
	var updated models.CodeFile
	if err := r.db.GetContext(ctx, &updated, query, file.ID, file.FileName, file.FileContent, file.Language, time.Now().UTC()); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a code file.
func (r *CodeFileRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM session_code_files WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete code file: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete code file rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
