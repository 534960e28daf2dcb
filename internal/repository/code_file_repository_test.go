package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillmint/skillmint-api/internal/models"
)

func TestCodeFileRepositoryListBySession(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCodeFileRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "session_id", "file_name", "file_content", "language", "created_at", "updated_at"}).
		AddRow("file-1", "sess-1", "app.js", "console.log('hi')", "javascript", now, now).
		AddRow("file-2", "sess-1", "index.html", "<html></html>", "html", now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM session_code_files WHERE session_id = $1 ORDER BY file_name ASC")).
		WithArgs("sess-1").
		WillReturnRows(rows)

	files, err := repo.ListBySession(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "app.js", files[0].FileName)
	assert.Equal(t, "html", files[1].Language)
}

func TestCodeFileRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCodeFileRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM session_code_files WHERE id = $1")).
		WithArgs("file-9").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "file-9")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCodeFileRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCodeFileRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO session_code_files")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	file := &models.CodeFile{SessionID: "sess-1", FileName: "styles.css", Language: "css"}
	require.NoError(t, repo.Create(context.Background(), file))
	assert.NotEmpty(t, file.ID)
}

func TestCodeFileRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCodeFileRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM session_code_files WHERE id = $1")).
		WithArgs("file-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "file-1"))
}
