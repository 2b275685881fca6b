package auth

import (
	"net/http"
	"tick/infras/otel"
	"tick/infras/session"
	"tick/internal/domains/auth/model/dto"
	"tick/internal/domains/auth/service"
	"tick/shared/constant"
	"tick/shared/failure"
	"tick/shared/validator"
	"tick/transport/http/flash"
	"tick/transport/http/response"
	"tick/transport/http/view"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service  service.Auth
	sessions session.Sessions
	view     *view.View
	otel     otel.Otel
}

func New(service service.Auth, sessions session.Sessions, view *view.View, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		sessions: sessions,
		view:     view,
		otel:     otel,
	}
}

// Router mounts the public entry points. Logout lives on the protected
// router and is registered separately.
func (handler *Handler) Router(r chi.Router) {
	r.Get(constant.PathSignup, handler.ShowSignUp)
	r.Post(constant.PathSignup, handler.SignUp)
	r.Get(constant.PathLogin, handler.ShowLogin)
	r.Post(constant.PathLogin, handler.Login)
}

// ProtectedRouter mounts the routes that require an active session.
func (handler *Handler) ProtectedRouter(r chi.Router) {
	r.Get("/logout", handler.Logout)
}

// ShowSignUp renders the signup form.
func (handler *Handler) ShowSignUp(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ShowSignUp")
	defer scope.End()

	handler.view.Render(w, "signup.html", view.Data{Flash: flash.Pop(w, r)})
}

// SignUp creates an account and starts a session for it. A taken username
// writes nothing and redirects back to the form with a message.
func (handler *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SignUp")
	defer scope.End()

	req := dto.SignUpRequest{}

	if err := validator.ValidateForm(r, &req); err != nil {
		scope.TraceError(err)

		flash.Set(w, err.Error())
		response.Redirect(w, r, constant.PathSignup)

		return
	}

	user, err := handler.service.SignUp(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to sign up user")

		if failure.IsCode(err, http.StatusConflict) {
			flash.Set(w, "Username already exists")
		} else {
			flash.Set(w, "Something went wrong, please try again")
		}

		response.Redirect(w, r, constant.PathSignup)

		return
	}

	handler.startSession(w, r, user.ID, user.Username, scope)
}

// ShowLogin renders the login form.
func (handler *Handler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ShowLogin")
	defer scope.End()

	handler.view.Render(w, "login.html", view.Data{Flash: flash.Pop(w, r)})
}

// Login verifies credentials and starts a session. Invalid credentials
// re-render the form with a message instead of redirecting.
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.ValidateForm(r, &req); err != nil {
		scope.TraceError(err)

		handler.view.Render(w, "login.html", view.Data{Flash: "Invalid username or password"})

		return
	}

	user, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)

		handler.view.Render(w, "login.html", view.Data{Flash: "Invalid username or password"})

		return
	}

	handler.startSession(w, r, user.ID, user.Username, scope)
}

// Logout ends the session unconditionally and returns to the login page.
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	http.SetCookie(w, handler.sessions.ClearCookie())
	response.Redirect(w, r, constant.PathLogin)
}

func (handler *Handler) startSession(w http.ResponseWriter, r *http.Request, userID int64, username string, scope otel.Scope) {
	token, err := handler.sessions.Issue(userID, username)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to issue session token")

		flash.Set(w, "Something went wrong, please try again")
		response.Redirect(w, r, constant.PathLogin)

		return
	}

	scope.AddEvent("session started")

	http.SetCookie(w, handler.sessions.Cookie(token))
	response.Redirect(w, r, constant.PathHome)
}
