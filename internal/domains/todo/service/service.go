package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"tick/config"
	"tick/infras/otel"
	"tick/internal/domains/todo/model"
	"tick/internal/domains/todo/model/dto"
	"tick/internal/domains/todo/repository"
	"tick/shared/constant"
	"tick/shared/failure"

	"github.com/rs/zerolog/log"
)

type Todo interface {
	Create(ctx context.Context, req dto.CreateTodoRequest, ownerID int64) error
	List(ctx context.Context, ownerID int64) (dto.TodoListResponse, error)
	Toggle(ctx context.Context, id, requesterID int64) error
	Delete(ctx context.Context, id, requesterID int64) error
}

type serviceImpl struct {
	repo repository.Todo
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Todo, cfg *config.Config, otel otel.Otel) Todo {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

// Create stores a new todo owned by ownerID. An empty title is a silent
// no-op: nothing is written and no error is surfaced.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTodoRequest, ownerID int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".todo.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Title == "" {
		log.Debug().Int64("user_id", ownerID).Msg("ignoring todo creation with empty title")

		return nil
	}

	if _, err = s.repo.Insert(ctx, req.ToModel(ownerID)); err != nil {
		log.Error().Err(err).Msg("failed to create todo")

		return fmt.Errorf("failed to create todo: %w", err)
	}

	return nil
}

// List returns all of ownerID's todos, newest first.
func (s *serviceImpl) List(ctx context.Context, ownerID int64) (res dto.TodoListResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".todo.List")
	defer scope.End()
	defer scope.TraceIfError(err)

	models, err := s.repo.GetAllByOwner(ctx, ownerID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get todos")

		return res, fmt.Errorf("failed to get todos: %w", err)
	}

	res.FromModels(models)

	return res, nil
}

// Toggle flips the completion flag of an owned todo.
func (s *serviceImpl) Toggle(ctx context.Context, id, requesterID int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".todo.Toggle")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.authorize(ctx, id, requesterID); err != nil {
		return err
	}

	if err = s.repo.ToggleCompleted(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to toggle todo")

		return fmt.Errorf("failed to toggle todo: %w", err)
	}

	return nil
}

// Delete permanently removes an owned todo.
func (s *serviceImpl) Delete(ctx context.Context, id, requesterID int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".todo.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.authorize(ctx, id, requesterID); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to delete todo")

		return fmt.Errorf("failed to delete todo: %w", err)
	}

	return nil
}

// authorize loads the todo and checks ownership. Callers are expected to
// handle NotFound and Forbidden identically so a requester cannot probe
// which ids exist.
func (s *serviceImpl) authorize(ctx context.Context, id, requesterID int64) error {
	todo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get todo")

		return fmt.Errorf("failed to get todo: %w", err)
	}

	if todo == (model.Todo{}) {
		return failure.NotFound("todo not found") //nolint:wrapcheck
	}

	if todo.UserID != requesterID {
		log.Warn().Int64("todo_id", id).Int64("user_id", requesterID).Msg("denied access to todo owned by another user")

		return failure.Forbidden("todo not found") //nolint:wrapcheck
	}

	return nil
}
