package todo

import (
	"net/http"
	"strconv"
	"tick/infras/otel"
	"tick/internal/domains/todo/model/dto"
	"tick/internal/domains/todo/service"
	"tick/shared/constant"
	"tick/shared/validator"
	"tick/transport/http/flash"
	"tick/transport/http/middleware"
	"tick/transport/http/response"
	"tick/transport/http/view"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Todo
	view    *view.View
	otel    otel.Otel
}

func New(service service.Todo, view *view.View, otel otel.Otel) Handler {
	return Handler{
		service: service,
		view:    view,
		otel:    otel,
	}
}

// Router mounts the todo routes. All of them sit behind the session guard.
func (handler *Handler) Router(r chi.Router) {
	r.Get(constant.PathHome, handler.Index)
	r.Post("/add", handler.Add)
	r.Get("/complete/{id}", handler.Complete)
	r.Get("/delete/{id}", handler.Delete)
}

// Index renders the requester's todo list, newest first.
func (handler *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Index")
	defer scope.End()

	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RedirectToLogin(w, r)

		return
	}

	res, err := handler.service.List(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list todos")

		res = dto.TodoListResponse{}
	}

	handler.view.Render(w, "index.html", view.Data{
		Username: middleware.Username(ctx),
		Flash:    flash.Pop(w, r),
		Todos:    res.Todos,
	})
}

// Add creates a todo from the submitted form. An empty title creates
// nothing; either way the requester lands back on the list.
func (handler *Handler) Add(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Add")
	defer scope.End()

	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RedirectToLogin(w, r)

		return
	}

	req := dto.CreateTodoRequest{}

	if err := validator.ValidateForm(r, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate todo form")

		response.Redirect(w, r, constant.PathHome)

		return
	}

	if err := handler.service.Create(ctx, req, userID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create todo")
	}

	response.Redirect(w, r, constant.PathHome)
}

// Complete toggles a todo's completion flag. Missing and foreign ids land
// on the same redirect with no record change.
func (handler *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Complete")
	defer scope.End()

	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RedirectToLogin(w, r)

		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, constant.RequestParamID), 10, 64)
	if err != nil {
		response.Redirect(w, r, constant.PathHome)

		return
	}

	if err := handler.service.Toggle(ctx, id, userID); err != nil {
		scope.TraceError(err)
		log.Debug().Err(err).Int64("todo_id", id).Msg("toggle rejected")
	}

	response.Redirect(w, r, constant.PathHome)
}

// Delete removes a todo. Missing and foreign ids land on the same redirect
// with no record change.
func (handler *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Delete")
	defer scope.End()

	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RedirectToLogin(w, r)

		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, constant.RequestParamID), 10, 64)
	if err != nil {
		response.Redirect(w, r, constant.PathHome)

		return
	}

	if err := handler.service.Delete(ctx, id, userID); err != nil {
		scope.TraceError(err)
		log.Debug().Err(err).Int64("todo_id", id).Msg("delete rejected")
	}

	response.Redirect(w, r, constant.PathHome)
}
