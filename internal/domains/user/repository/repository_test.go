package repository_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"tick/infras/otel/mocks"
	"tick/infras/postgres"
	"tick/internal/domains/user/model"
	"tick/internal/domains/user/repository"
	"tick/shared/failure"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func newMockConnection(t *testing.T) (*postgres.Connection, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	wrapped := sqlx.NewDb(db, "sqlmock")

	return &postgres.Connection{Read: wrapped, Write: wrapped}, mock
}

func TestUserRepository_Insert(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := repository.New(conn, mocks.NewOtel())

	mock.ExpectQuery(`INSERT INTO users \(username, password_hash, created_at\)`).
		WithArgs("alice", "$2a$10$fakedigest", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	id, err := repo.Insert(context.Background(), model.User{
		Username:     "alice",
		PasswordHash: "$2a$10$fakedigest",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Insert_DuplicateUsername(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := repository.New(conn, mocks.NewOtel())

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice", "$2a$10$fakedigest", sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})

	id, err := repo.Insert(context.Background(), model.User{
		Username:     "alice",
		PasswordHash: "$2a$10$fakedigest",
	})

	assert.Zero(t, id)
	assert.True(t, failure.IsCode(err, http.StatusConflict), "expected a conflict failure, got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Insert_DatabaseError(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := repository.New(conn, mocks.NewOtel())

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(errors.New("connection refused"))

	id, err := repo.Insert(context.Background(), model.User{Username: "alice"})

	assert.Zero(t, id)
	assert.Error(t, err)
	assert.False(t, failure.IsCode(err, http.StatusConflict))
}

func TestUserRepository_GetByUsername(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := repository.New(conn, mocks.NewOtel())

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
		AddRow(int64(1), "alice", "$2a$10$fakedigest", time.Now().UTC())

	mock.ExpectQuery(`SELECT id, username, password_hash, created_at`).
		WithArgs("alice").
		WillReturnRows(rows)

	user, err := repo.GetByUsername(context.Background(), "alice")

	assert.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "$2a$10$fakedigest", user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByUsername_NotFound(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := repository.New(conn, mocks.NewOtel())

	mock.ExpectQuery(`SELECT id, username, password_hash, created_at`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}))

	user, err := repo.GetByUsername(context.Background(), "ghost")

	assert.NoError(t, err, "expected an absent user to resolve without error")
	assert.Zero(t, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := repository.New(conn, mocks.NewOtel())

	mock.ExpectQuery(`SELECT id, username, password_hash, created_at`).
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}))

	user, err := repo.GetByID(context.Background(), 999)

	assert.NoError(t, err)
	assert.Zero(t, user.ID)
}

func TestUserRepository_ExistByUsername(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := repository.New(conn, mocks.NewOtel())

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistByUsername(context.Background(), "alice")

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
