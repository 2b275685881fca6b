//go:build wireinject
// +build wireinject

package di

import (
	"tick/config"
	"tick/infras/otel"
	"tick/infras/postgres"
	"tick/infras/redis"
	"tick/infras/session"
	"tick/shared/cache"
	"tick/transport/http"
	"tick/transport/http/middleware"
	"tick/transport/http/router"
	"tick/transport/http/view"

	"github.com/google/wire"

	authService "tick/internal/domains/auth/service"
	todoRepository "tick/internal/domains/todo/repository"
	todoService "tick/internal/domains/todo/service"
	userRepository "tick/internal/domains/user/repository"

	authHandler "tick/internal/handlers/auth"
	todoHandler "tick/internal/handlers/todo"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	session.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	view.New,
)

var todoDomain = wire.NewSet(
	todoRepository.New,
	todoService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var domains = wire.NewSet(
	todoDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	todoHandler.New,
	authHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}
