package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"tick/config"
	"tick/infras/otel"
	"tick/internal/domains/auth/model/dto"
	userModel "tick/internal/domains/user/model"
	userRepo "tick/internal/domains/user/repository"
	"tick/shared/constant"
	"tick/shared/failure"
	"tick/shared/password"

	"github.com/rs/zerolog/log"
)

type Auth interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) (userModel.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (userModel.User, error)
}

type serviceImpl struct {
	userRepo userRepo.User
	cfg      *config.Config
	otel     otel.Otel
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel) Auth {
	return &serviceImpl{
		userRepo: userRepo,
		cfg:      cfg,
		otel:     otel,
	}
}

// SignUp creates a new account. A taken username writes nothing and fails
// with a conflict.
func (s *serviceImpl) SignUp(ctx context.Context, req dto.SignUpRequest) (user userModel.User, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.SignUp")
	defer scope.End()
	defer scope.TraceIfError(err)

	exists, err := s.userRepo.ExistByUsername(ctx, req.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return user, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return user, failure.Conflict("username already exists") //nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return user, fmt.Errorf("failed to hash password: %w", err)
	}

	user = req.ToUserModel(hashedPassword)

	// The username unique constraint backstops the exist check against a
	// racing signup with the same name.
	id, err := s.userRepo.Insert(ctx, user)
	if err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return userModel.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = id

	log.Info().Int64("user_id", id).Str("username", user.Username).Msg("user registered")

	return user, nil
}

// Login verifies credentials and returns the matching user. Unknown
// usernames and wrong passwords fail identically.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (user userModel.User, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err = s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return userModel.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == 0 {
		log.Warn().Str("username", req.Username).Msg("login attempt with unknown username")

		return userModel.User{}, failure.Unauthorized("invalid username or password") //nolint:wrapcheck
	}

	if !password.Verify(user.PasswordHash, req.Password) {
		log.Warn().Str("username", req.Username).Msg("login attempt with wrong password")

		return userModel.User{}, failure.Unauthorized("invalid username or password") //nolint:wrapcheck
	}

	return user, nil
}
