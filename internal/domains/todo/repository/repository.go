package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"tick/infras/otel"
	"tick/infras/postgres"
	"tick/internal/domains/todo/model"
	"tick/shared/constant"

	"github.com/rs/zerolog/log"
)

type Todo interface {
	Insert(ctx context.Context, todo model.Todo) (int64, error)
	GetByID(ctx context.Context, id int64) (model.Todo, error)
	GetAllByOwner(ctx context.Context, ownerID int64) ([]model.Todo, error)
	ToggleCompleted(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Todo {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

const queryInsertTodo = `
	INSERT INTO todos (title, description, completed, created_at, user_id)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id`

func (r *repositoryImpl) Insert(ctx context.Context, todo model.Todo) (id int64, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.Insert")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryInsertTodo)

	err = r.db.Write.QueryRowxContext(ctx, queryInsertTodo,
		todo.Title, todo.Description, todo.Completed, todo.CreatedAt, todo.UserID).Scan(&id)
	if err != nil {
		log.Error().Err(err).Int64("user_id", todo.UserID).Msg("failed to insert todo")

		return 0, fmt.Errorf("failed to insert todo: %w", err)
	}

	return id, nil
}

const queryGetTodo = `
	SELECT id, title, description, completed, created_at, user_id
	FROM todos`

// GetByID returns the zero model with a nil error when no row matches.
func (r *repositoryImpl) GetByID(ctx context.Context, id int64) (todo model.Todo, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.GetByID")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := queryGetTodo + ` WHERE id = $1`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = r.db.Read.GetContext(ctx, &todo, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Todo{}, nil
		}

		log.Error().Err(err).Int64("id", id).Msg("failed to get todo by id")

		return model.Todo{}, fmt.Errorf("failed to get todo by id: %w", err)
	}

	return todo, nil
}

// GetAllByOwner lists the owner's todos, newest first.
func (r *repositoryImpl) GetAllByOwner(ctx context.Context, ownerID int64) (todos []model.Todo, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.GetAllByOwner")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := queryGetTodo + ` WHERE user_id = $1 ORDER BY created_at DESC`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = r.db.Read.SelectContext(ctx, &todos, query, ownerID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", ownerID).Msg("failed to get todos")

		return nil, fmt.Errorf("failed to get todos: %w", err)
	}

	return todos, nil
}

const queryToggleTodo = `
	UPDATE todos SET completed = NOT completed WHERE id = $1`

// ToggleCompleted flips the completion flag in a single statement; existence
// is the caller's responsibility.
func (r *repositoryImpl) ToggleCompleted(ctx context.Context, id int64) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.ToggleCompleted")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryToggleTodo)

	_, err = r.db.Write.ExecContext(ctx, queryToggleTodo, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to toggle todo")

		return fmt.Errorf("failed to toggle todo: %w", err)
	}

	return nil
}

const queryDeleteTodo = `
	DELETE FROM todos WHERE id = $1`

func (r *repositoryImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryDeleteTodo)

	_, err = r.db.Write.ExecContext(ctx, queryDeleteTodo, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete todo")

		return fmt.Errorf("failed to delete todo: %w", err)
	}

	return nil
}
