package middleware

import (
	"context"
	"net/http"
	"tick/infras/otel"
	"tick/infras/session"
	"tick/shared/constant"
	"tick/transport/http/response"

	"github.com/rs/zerolog/log"
)

// Auth guards protected routes behind an active session.
type Auth interface {
	RequireSession(next http.Handler) http.Handler
}

type authImpl struct {
	sessions session.Sessions
	otel     otel.Otel
}

func NewAuthMiddleware(sessions session.Sessions, otel otel.Otel) Auth {
	return &authImpl{
		sessions: sessions,
		otel:     otel,
	}
}

// RequireSession resolves the session cookie to a user identity. Anonymous
// requests are redirected to the login page without invoking the handler;
// invalid and expired tokens are treated the same as no token at all.
func (m *authImpl) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "session.middleware")
		defer scope.End()

		cookie, err := r.Cookie(m.sessions.CookieName())
		if err != nil {
			response.RedirectToLogin(w, r)

			return
		}

		claims, err := m.sessions.Parse(cookie.Value)
		if err != nil {
			log.Debug().Err(err).Msg("rejecting request with unusable session token")

			http.SetCookie(w, m.sessions.ClearCookie())
			response.RedirectToLogin(w, r)

			return
		}

		scope.SetAttribute("session.user_id", claims.UserID)

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUsername, claims.Username)
		ctx = context.WithValue(ctx, constant.ContextKeySession, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID extracts the authenticated user's id from a request context
// populated by RequireSession.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(constant.ContextKeyUserID).(int64)

	return id, ok
}

// Username extracts the authenticated user's name from a request context
// populated by RequireSession.
func Username(ctx context.Context) string {
	name, _ := ctx.Value(constant.ContextKeyUsername).(string)

	return name
}
