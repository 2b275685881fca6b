package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"tick/infras/otel"
	"tick/infras/postgres"
	"tick/internal/domains/user/model"
	"tick/shared/constant"
	"tick/shared/failure"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type User interface {
	Insert(ctx context.Context, user model.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByID(ctx context.Context, id int64) (model.User, error)
	ExistByUsername(ctx context.Context, username string) (bool, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

const queryInsertUser = `
	INSERT INTO users (username, password_hash, created_at)
	VALUES ($1, $2, $3)
	RETURNING id`

// Insert stores a new user and returns its assigned id. A username collision
// surfaces as a conflict failure, distinct from not-found.
func (r *repositoryImpl) Insert(ctx context.Context, user model.User) (id int64, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.Insert")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryInsertUser)

	err = r.db.Write.QueryRowxContext(ctx, queryInsertUser, user.Username, user.PasswordHash, user.CreatedAt).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return 0, failure.Conflict("username already exists") //nolint:wrapcheck
		}

		log.Error().Err(err).Str("username", user.Username).Msg("failed to insert user")

		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	return id, nil
}

const queryGetUser = `
	SELECT id, username, password_hash, created_at
	FROM users`

// GetByUsername returns the zero model with a nil error when no row matches.
func (r *repositoryImpl) GetByUsername(ctx context.Context, username string) (user model.User, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.GetByUsername")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := queryGetUser + ` WHERE username = $1`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = r.db.Read.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, nil
		}

		log.Error().Err(err).Str("username", username).Msg("failed to get user by username")

		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// GetByID returns the zero model with a nil error when no row matches.
func (r *repositoryImpl) GetByID(ctx context.Context, id int64) (user model.User, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.GetByID")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := queryGetUser + ` WHERE id = $1`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = r.db.Read.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, nil
		}

		log.Error().Err(err).Int64("id", id).Msg("failed to get user by id")

		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

const queryExistUser = `
	SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`

func (r *repositoryImpl) ExistByUsername(ctx context.Context, username string) (exist bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.ExistByUsername")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryExistUser)

	err = r.db.Read.GetContext(ctx, &exist, queryExistUser, username)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("failed to check if user exists")

		return false, fmt.Errorf("failed to check if user exists: %w", err)
	}

	return exist, nil
}
