package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillmint/skillmint-api/internal/dto"
	"github.com/skillmint/skillmint-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
		db.Close()
	}
	return sqlxDB, mock, cleanup
}

func TestAccessRequestRepositoryFindByUserAndCourse(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAccessRequestRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "course_id", "status", "created_at", "updated_at"}).
		AddRow("req-1", "user-1", "course-1", "pending", now, now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, course_id, status, created_at, updated_at FROM course_access_requests WHERE user_id = $1 AND course_id = $2")).
		WithArgs("user-1", "course-1").
		WillReturnRows(rows)

	req, err := repo.FindByUserAndCourse(context.Background(), "user-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, "req-1", req.ID)
	assert.Equal(t, models.AccessPending, req.Status)
}

func TestAccessRequestRepositoryFindByUserAndCourseNoRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAccessRequestRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs("user-1", "course-9").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUserAndCourse(context.Background(), "user-1", "course-9")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestAccessRequestRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAccessRequestRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO course_access_requests")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	req := &models.AccessRequest{UserID: "user-1", CourseID: "course-1", Status: models.AccessPending}
	require.NoError(t, repo.Create(context.Background(), req))
	assert.NotEmpty(t, req.ID)
	assert.False(t, req.CreatedAt.IsZero())
}

func TestAccessRequestRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAccessRequestRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "course_id", "status", "created_at", "updated_at"}).
		AddRow("req-1", "user-1", "course-1", "approved", now, now)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE course_access_requests SET status = $2")).
		WithArgs("req-1", models.AccessApproved, sqlmock.AnyArg()).
		WillReturnRows(rows)

	req, err := repo.UpdateStatus(context.Background(), "req-1", models.AccessApproved)
	require.NoError(t, err)
	assert.Equal(t, models.AccessApproved, req.Status)
}

func TestAccessRequestRepositoryUpdateStatusMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAccessRequestRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE course_access_requests SET status = $2")).
		WithArgs("req-9", models.AccessRejected, sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateStatus(context.Background(), "req-9", models.AccessRejected)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestAccessRequestRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAccessRequestRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "user_email", "course_id", "course_title", "status", "created_at", "updated_at"}).
		AddRow("req-1", "user-1", "learner@example.com", "course-1", "Intro to React", "pending", now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM course_access_requests ar")).
		WithArgs("pending").
		WillReturnRows(rows)

	items, err := repo.List(context.Background(), dto.AccessRequestFilter{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "learner@example.com", items[0].UserEmail)
	assert.Equal(t, "Intro to React", items[0].CourseTitle)
}
