package todo_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tick/config"
	"tick/infras/otel/mocks"
	"tick/infras/session"
	"tick/internal/domains/todo/model/dto"
	serviceMocks "tick/internal/domains/todo/service/mocks"
	"tick/internal/handlers/todo"
	"tick/shared/constant"
	"tick/shared/failure"
	"tick/transport/http/middleware"
	"tick/transport/http/view"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "tick-test"
	cfg.Session.Secret = "test-secret"
	cfg.Session.ExpireMin = 60

	return cfg
}

func newTestRouter(t *testing.T, ctrl *gomock.Controller) (*serviceMocks.MockTodo, session.Sessions, *chi.Mux) {
	t.Helper()

	mockService := serviceMocks.NewMockTodo(ctrl)
	sessions := session.New(testConfig())

	v, err := view.New()
	require.NoError(t, err)

	handler := todo.New(mockService, v, mocks.NewOtel())
	authMiddleware := middleware.NewAuthMiddleware(sessions, mocks.NewOtel())

	mux := chi.NewRouter()
	mux.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequireSession)
		handler.Router(r)
	})

	return mockService, sessions, mux
}

func authenticated(t *testing.T, sessions session.Sessions, req *http.Request) *http.Request {
	t.Helper()

	token, err := sessions.Issue(42, "alice")
	require.NoError(t, err)

	req.AddCookie(sessions.Cookie(token))

	return req
}

func TestIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService, sessions, mux := newTestRouter(t, ctrl)

	mockService.EXPECT().
		List(gomock.Any(), int64(42)).
		Return(dto.TodoListResponse{Todos: []dto.TodoResponse{
			{ID: 7, Title: "buy milk", Description: "two liters", CreatedAt: time.Now().UTC()},
			{ID: 6, Title: "water plants", Completed: true, CreatedAt: time.Now().UTC()},
		}}, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authenticated(t, sessions, httptest.NewRequest(http.MethodGet, constant.PathHome, nil)))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "alice")
	assert.Contains(t, body, "buy milk")
	assert.Contains(t, body, "/complete/7")
	assert.Contains(t, body, "/delete/6")
}

func TestIndex_EmptyList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService, sessions, mux := newTestRouter(t, ctrl)

	mockService.EXPECT().
		List(gomock.Any(), int64(42)).
		Return(dto.TodoListResponse{}, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authenticated(t, sessions, httptest.NewRequest(http.MethodGet, constant.PathHome, nil)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nothing to do yet.")
}

func TestIndex_ServiceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService, sessions, mux := newTestRouter(t, ctrl)

	mockService.EXPECT().
		List(gomock.Any(), int64(42)).
		Return(dto.TodoListResponse{}, errors.New("database error"))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authenticated(t, sessions, httptest.NewRequest(http.MethodGet, constant.PathHome, nil)))

	// The page still renders, just empty.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nothing to do yet.")
}

func TestIndex_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No List expectation: the guard must short-circuit before the handler.
	_, _, mux := newTestRouter(t, ctrl)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, constant.PathHome, nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, constant.PathLogin, rec.Header().Get("Location"))
}

func TestIndex_GarbageSessionCookie(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, sessions, mux := newTestRouter(t, ctrl)

	req := httptest.NewRequest(http.MethodGet, constant.PathHome, nil)
	req.AddCookie(&http.Cookie{Name: sessions.CookieName(), Value: "not-a-token"})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, constant.PathLogin, rec.Header().Get("Location"))

	var cleared *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessions.CookieName() {
			cleared = cookie
		}
	}
	require.NotNil(t, cleared, "expected the unusable cookie to be cleared")
	assert.Negative(t, cleared.MaxAge)
}

func TestAdd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService, sessions, mux := newTestRouter(t, ctrl)

	mockService.EXPECT().
		Create(gomock.Any(), dto.CreateTodoRequest{Title: "buy milk", Description: "two liters"}, int64(42)).
		Return(nil)

	form := url.Values{
		constant.FormFieldTitle:       {"buy milk"},
		constant.FormFieldDescription: {"two liters"},
	}
	req := httptest.NewRequest(http.MethodPost, "/add", strings.NewReader(form.Encode()))
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeFormURLEncoded)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authenticated(t, sessions, req))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, constant.PathHome, rec.Header().Get("Location"))
}

func TestAdd_EmptyTitle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService, sessions, mux := newTestRouter(t, ctrl)

	// The empty title reaches the service, which drops it silently.
	mockService.EXPECT().
		Create(gomock.Any(), dto.CreateTodoRequest{Title: ""}, int64(42)).
		Return(nil)

	form := url.Values{constant.FormFieldTitle: {"   "}}
	req := httptest.NewRequest(http.MethodPost, "/add", strings.NewReader(form.Encode()))
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeFormURLEncoded)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authenticated(t, sessions, req))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, constant.PathHome, rec.Header().Get("Location"))
}

func TestComplete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService, sessions, mux := newTestRouter(t, ctrl)

	mockService.EXPECT().
		Toggle(gomock.Any(), int64(7), int64(42)).
		Return(nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authenticated(t, sessions, httptest.NewRequest(http.MethodGet, "/complete/7", nil)))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, constant.PathHome, rec.Header().Get("Location"))
}

func TestComplete_Rejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "todo does not exist", err: failure.NotFound("todo not found")},
		{name: "todo owned by another user", err: failure.Forbidden("todo not found")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService, sessions, mux := newTestRouter(t, ctrl)

			mockService.EXPECT().
				Toggle(gomock.Any(), int64(7), int64(42)).
				Return(tt.err)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, authenticated(t, sessions, httptest.NewRequest(http.MethodGet, "/complete/7", nil)))

			// Both rejections land on the same redirect so a requester cannot
			// tell a foreign todo from a missing one.
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, constant.PathHome, rec.Header().Get("Location"))
		})
	}
}

func TestComplete_MalformedID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No Toggle expectation: a malformed id never reaches the service.
	_, sessions, mux := newTestRouter(t, ctrl)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authenticated(t, sessions, httptest.NewRequest(http.MethodGet, "/complete/abc", nil)))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, constant.PathHome, rec.Header().Get("Location"))
}

func TestDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService, sessions, mux := newTestRouter(t, ctrl)

	mockService.EXPECT().
		Delete(gomock.Any(), int64(7), int64(42)).
		Return(nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authenticated(t, sessions, httptest.NewRequest(http.MethodGet, "/delete/7", nil)))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, constant.PathHome, rec.Header().Get("Location"))
}

func TestDelete_Rejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService, sessions, mux := newTestRouter(t, ctrl)

	mockService.EXPECT().
		Delete(gomock.Any(), int64(7), int64(42)).
		Return(failure.Forbidden("todo not found"))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authenticated(t, sessions, httptest.NewRequest(http.MethodGet, "/delete/7", nil)))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, constant.PathHome, rec.Header().Get("Location"))
}
