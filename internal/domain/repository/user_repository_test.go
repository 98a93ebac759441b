package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"career_compass_v2/internal/common"
	"career_compass_v2/internal/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestUserCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgUserRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("alice", "a@x.com", "hashed", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

	user := &model.User{Username: "alice", Email: "a@x.com", HashedPassword: "hashed"}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, int64(1), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("alice", "a@x.com", "hashed", "").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	user := &model.User{Username: "alice", Email: "a@x.com", HashedPassword: "hashed"}
	err := repo.Create(context.Background(), user)
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserFindByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgUserRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "username", "email", "hashed_password", "reflection_notes", "created_at", "updated_at"}).
		AddRow(int64(1), "alice", "a@x.com", "hashed", "notes", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("alice").
		WillReturnRows(rows)

	user, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "hashed", user.HashedPassword)
	assert.Equal(t, "notes", user.ReflectionNotes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserFindByUsernameMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdatePassword(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET hashed_password = $1")).
		WithArgs("newhash", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.UpdatePassword(context.Background(), 1, "newhash"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdatePasswordMissingUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET hashed_password = $1")).
		WithArgs("newhash", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(context.Background(), 99, "newhash")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReflectionNotesReadWrite(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT reflection_notes FROM users WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"reflection_notes"}).AddRow("my notes"))

	notes, err := repo.GetReflectionNotes(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "my notes", notes)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET reflection_notes = $1")).
		WithArgs("updated", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.UpdateReflectionNotes(context.Background(), 1, "updated"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
