package router

import (
	"net/http"
	"tick/internal/handlers/auth"
	"tick/internal/handlers/todo"
	"tick/transport/http/middleware"
	"tick/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth auth.Handler
	Todo todo.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Auth           middleware.Auth
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.WithMessage(w, http.StatusOK, "ok")
	})

	r.DomainHandlers.Auth.Router(router)

	// Everything below requires an active session.
	router.Group(func(routerGroup chi.Router) {
		routerGroup.Use(r.Auth.RequireSession)

		r.DomainHandlers.Auth.ProtectedRouter(routerGroup)
		r.DomainHandlers.Todo.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authMiddleware middleware.Auth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Auth:           authMiddleware,
	}
}
