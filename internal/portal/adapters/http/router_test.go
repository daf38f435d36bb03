package http_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	portalhttp "campusportal/internal/portal/adapters/http"
	"campusportal/internal/portal/adapters/http/middleware"
	"campusportal/internal/portal/adapters/http/views"
	"campusportal/internal/portal/adapters/store"
	"campusportal/internal/portal/app"
	"campusportal/internal/portal/domain/entities"
	"campusportal/internal/portal/domain/services"
	"campusportal/internal/portal/domain/validation"
	"campusportal/internal/portal/ports/api"
	"campusportal/internal/portal/resilience"
)

const cookieName = "portal_sid"

type testPortal struct {
	app      *fiber.App
	redis    *miniredis.Miniredis
	auth     *mockAuthUseCase
	accounts *mockAccountUseCase
	sessions api.SessionUseCase
}

func newTestPortal(t *testing.T) *testPortal {
	t.Helper()

	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	guard := resilience.NewGuard("sessions",
		resilience.DefaultCircuitBreakerConfig(),
		resilience.RetryConfig{MaxAttempts: 1, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond, BackoffFactor: 1},
		store.IsTransient)

	sessions := app.NewSessionUseCase(store.NewSessionStore(client, time.Hour, guard))
	feedback := app.NewFeedbackUseCase(store.NewFeedbackStore(client, 10*time.Minute))

	renderer, err := views.NewRenderer()
	require.NoError(t, err)

	p := &testPortal{
		app:      fiber.New(),
		redis:    s,
		auth:     new(mockAuthUseCase),
		accounts: new(mockAccountUseCase),
		sessions: sessions,
	}

	portalhttp.SetupRouter(p.app, nil, portalhttp.Dependencies{
		Auth:     p.auth,
		Accounts: p.accounts,
		Sessions: sessions,
		Feedback: feedback,
		Renderer: renderer,
		Cookie:   &middleware.SessionCookie{Name: cookieName, TTL: time.Hour, SameSite: "Lax"},
	})
	return p
}

func (p *testPortal) do(t *testing.T, method, target, sid string, form url.Values) *http.Response {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: sid})
	}

	resp, err := p.app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// anonymous получает идентификатор сессии так же, как браузер при первом визите.
func (p *testPortal) anonymous(t *testing.T) string {
	t.Helper()

	resp := p.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	c := sessionCookie(resp)
	require.NotNil(t, c)
	return c.Value
}

func (p *testPortal) login(t *testing.T, identity *entities.Identity) string {
	t.Helper()

	sid := p.anonymous(t)
	sid, err := p.sessions.Rotate(context.Background(), sid, identity)
	require.NoError(t, err)
	return sid
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	return nil
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func assertRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, location, resp.Header.Get("Location"))
}

func validationErr(t *testing.T, flow validation.Flow, fields map[string]string) error {
	t.Helper()
	res, err := validation.New().Validate(flow, fields)
	require.NoError(t, err)
	require.Error(t, res.Err())
	return fmt.Errorf("validating form: %w", res.Err())
}

func TestPagesAndMiddleware(t *testing.T) {
	t.Run("первый визит получает сессию и request id", func(t *testing.T) {
		p := newTestPortal(t)

		resp := p.do(t, http.MethodGet, "/", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get(middleware.HeaderRequestID))

		c := sessionCookie(resp)
		require.NotNil(t, c)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, "/", c.Path)
	})

	t.Run("request id из заголовка возвращается клиенту", func(t *testing.T) {
		p := newTestPortal(t)

		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.Header.Set(middleware.HeaderRequestID, "req-42")
		resp, err := p.app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, "req-42", resp.Header.Get(middleware.HeaderRequestID))
	})

	t.Run("неизвестный маршрут", func(t *testing.T) {
		p := newTestPortal(t)

		resp := p.do(t, http.MethodGet, "/nowhere", "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "does not exist")
	})

	t.Run("dashboard без входа", func(t *testing.T) {
		p := newTestPortal(t)
		sid := p.anonymous(t)

		resp := p.do(t, http.MethodGet, "/dashboard", sid, nil)
		assertRedirect(t, resp, "/login")

		page := p.do(t, http.MethodGet, "/login", sid, nil)
		assert.Contains(t, readBody(t, page), services.MsgLoginRequired)

		again := p.do(t, http.MethodGet, "/login", sid, nil)
		assert.NotContains(t, readBody(t, again), services.MsgLoginRequired)
	})

	t.Run("dashboard владельца сессии", func(t *testing.T) {
		p := newTestPortal(t)
		sid := p.login(t, &entities.Identity{ID: 7, Name: "Ada", Email: "ada@example.com"})

		resp := p.do(t, http.MethodGet, "/dashboard", sid, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, "ada@example.com")
		assert.Contains(t, body, "/users/7/edit")
	})

	t.Run("список пользователей без хэшей", func(t *testing.T) {
		p := newTestPortal(t)
		sid := p.login(t, &entities.Identity{ID: 1, Name: "Admin", Role: entities.RoleAdmin})
		p.accounts.On("List", mock.Anything).Return([]*entities.User{
			{ID: 1, Name: "Admin", Email: "admin@example.com", PasswordHash: "$2a$10$abc", Role: entities.RoleAdmin},
			{ID: 2, Name: "Bob", Email: "bob@example.com", PasswordHash: "$2a$10$def"},
		}, nil)

		resp := p.do(t, http.MethodGet, "/register/list", sid, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := readBody(t, resp)
		assert.NotContains(t, body, "$2a$")
		assert.Contains(t, body, "/users/2/delete")
		assert.NotContains(t, body, "/users/1/delete")
	})

	t.Run("паника превращается в 500 без подробностей", func(t *testing.T) {
		p := newTestPortal(t)
		sid := p.anonymous(t)
		p.auth.On("Login", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
			panic("db password is hunter2")
		})

		resp := p.do(t, http.MethodPost, "/login", sid, url.Values{"email": {"a@b.co"}, "password": {"x"}})
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.NotContains(t, readBody(t, resp), "hunter2")
	})
}

func TestLoginAndLogout(t *testing.T) {
	form := url.Values{"email": {"ada@example.com"}, "password": {"secret123"}}

	t.Run("успешный вход выдает новую сессию", func(t *testing.T) {
		p := newTestPortal(t)
		sid := p.anonymous(t)
		identity := &entities.Identity{ID: 7, Name: "Ada", Email: "ada@example.com"}
		p.auth.On("Login", mock.Anything, api.LoginInput{Email: "ada@example.com", Password: "secret123"}).Return(identity, nil)

		resp := p.do(t, http.MethodPost, "/login", sid, form)
		assertRedirect(t, resp, "/dashboard")

		c := sessionCookie(resp)
		require.NotNil(t, c)
		assert.NotEqual(t, sid, c.Value)
		assert.False(t, p.redis.Exists("portal:session:"+sid))

		page := p.do(t, http.MethodGet, "/dashboard", c.Value, nil)
		assert.Equal(t, http.StatusOK, page.StatusCode)
		assert.Contains(t, readBody(t, page), services.MsgLoggedIn)
	})

	t.Run("неверные учетные данные", func(t *testing.T) {
		p := newTestPortal(t)
		sid := p.anonymous(t)
		p.auth.On("Login", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("login: %w", services.ErrInvalidCredentials))

		resp := p.do(t, http.MethodPost, "/login", sid, form)
		assertRedirect(t, resp, "/login")
		assert.Nil(t, sessionCookie(resp))

		page := p.do(t, http.MethodGet, "/login", sid, nil)
		assert.Contains(t, readBody(t, page), services.MsgInvalidCredentials)
	})

	t.Run("сбой инфраструктуры", func(t *testing.T) {
		p := newTestPortal(t)
		sid := p.anonymous(t)
		p.auth.On("Login", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("finding user: connection refused"))

		resp := p.do(t, http.MethodPost, "/login", sid, form)
		assertRedirect(t, resp, "/login")

		page := p.do(t, http.MethodGet, "/login", sid, nil)
		body := readBody(t, page)
		assert.Contains(t, body, services.MsgServiceUnavailable)
		assert.NotContains(t, body, "connection refused")
	})

	t.Run("ошибки проверки формы", func(t *testing.T) {
		p := newTestPortal(t)
		sid := p.anonymous(t)
		verr := validationErr(t, validation.FlowLogin, map[string]string{"email": "nope", "password": ""})
		p.auth.On("Login", mock.Anything, mock.Anything).Return(nil, verr)

		resp := p.do(t, http.MethodPost, "/login", sid, url.Values{"email": {"nope"}})
		assertRedirect(t, resp, "/login")

		page := p.do(t, http.MethodGet, "/login", sid, nil)
		body := readBody(t, page)
		for _, msg := range validation.Messages(verr) {
			assert.Contains(t, body, msg)
		}
	})

	t.Run("выход удаляет сессию", func(t *testing.T) {
		p := newTestPortal(t)
		sid := p.login(t, &entities.Identity{ID: 7, Name: "Ada"})

		resp := p.do(t, http.MethodPost, "/logout", sid, url.Values{})
		assertRedirect(t, resp, "/")
		assert.False(t, p.redis.Exists("portal:session:"+sid))

		c := sessionCookie(resp)
		require.NotNil(t, c)
		assert.Empty(t, c.Value)
		assert.True(t, c.Expires.Before(time.Now()))
	})

	t.Run("выход очищает cookie при недоступном хранилище", func(t *testing.T) {
		p := newTestPortal(t)
		sid := p.login(t, &entities.Identity{ID: 7, Name: "Ada"})
		p.redis.SetError("ERR simulated outage")

		resp := p.do(t, http.MethodPost, "/logout", sid, url.Values{})
		assertRedirect(t, resp, "/")

		c := sessionCookie(resp)
		require.NotNil(t, c)
		assert.Empty(t, c.Value)
		assert.True(t, c.Expires.Before(time.Now()))
	})
}

func TestRegister(t *testing.T) {
	form := url.Values{
		"name":            {"Ada"},
		"email":           {"ada@example.com"},
		"emailConfirm":    {"ada@example.com"},
		"password":        {"secret123"},
		"passwordConfirm": {"secret123"},
	}

	tests := []struct {
		name     string
		err      error
		location string
		message  string
	}{
		{
			name:     "успешная регистрация",
			location: "/login",
			message:  services.MsgRegistered,
		},
		{
			name:     "email уже занят",
			err:      fmt.Errorf("creating user: %w", services.ErrEmailAlreadyExists),
			location: "/register",
			message:  services.MsgEmailRegistered,
		},
		{
			name:     "сбой хранилища",
			err:      fmt.Errorf("creating user: timeout"),
			location: "/register",
			message:  services.MsgServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPortal(t)
			sid := p.anonymous(t)
			if tt.err == nil {
				p.auth.On("Register", mock.Anything, mock.Anything).Return(&entities.User{ID: 1}, nil)
			} else {
				p.auth.On("Register", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			resp := p.do(t, http.MethodPost, "/register", sid, form)
			assertRedirect(t, resp, tt.location)

			page := p.do(t, http.MethodGet, tt.location, sid, nil)
			assert.Contains(t, readBody(t, page), tt.message)
			p.auth.AssertExpectations(t)
		})
	}

	t.Run("форма передается без изменений", func(t *testing.T) {
		p := newTestPortal(t)
		sid := p.anonymous(t)
		p.auth.On("Register", mock.Anything, api.RegisterInput{
			Name:            "Ada",
			Email:           "ada@example.com",
			EmailConfirm:    "ada@example.com",
			Password:        "secret123",
			PasswordConfirm: "secret123",
		}).Return(&entities.User{ID: 1}, nil)

		resp := p.do(t, http.MethodPost, "/register", sid, form)
		assertRedirect(t, resp, "/login")
		p.auth.AssertExpectations(t)
	})
}

func TestAccountForms(t *testing.T) {
	t.Run("нечисловой id", func(t *testing.T) {
		p := newTestPortal(t)
		sid := p.login(t, &entities.Identity{ID: 1, Role: entities.RoleAdmin})

		resp := p.do(t, http.MethodPost, "/users/abc/edit", sid, url.Values{"name": {"X"}})
		assertRedirect(t, resp, "/register/list")

		p.accounts.On("List", mock.Anything).Return([]*entities.User{}, nil)
		page := p.do(t, http.MethodGet, "/register/list", sid, nil)
		assert.Contains(t, readBody(t, page), services.MsgUserNotFound)
		p.accounts.AssertNotCalled(t, "Edit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("успешное редактирование", func(t *testing.T) {
		p := newTestPortal(t)
		sid := p.login(t, &entities.Identity{ID: 2, Name: "Bob"})
		p.accounts.On("Edit", mock.Anything, sid, int64(2), api.EditInput{Name: "Bobby", Email: "bob@example.com"}).
			Return(&entities.User{ID: 2, Name: "Bobby"}, nil)

		resp := p.do(t, http.MethodPost, "/users/2/edit", sid, url.Values{"name": {"Bobby"}, "email": {"bob@example.com"}})
		assertRedirect(t, resp, "/register/list")
		p.accounts.AssertExpectations(t)
	})

	t.Run("ошибки проверки возвращают к форме", func(t *testing.T) {
		p := newTestPortal(t)
		sid := p.login(t, &entities.Identity{ID: 2})
		verr := validationErr(t, validation.FlowEdit, map[string]string{"name": "", "email": "bad"})
		p.accounts.On("Edit", mock.Anything, sid, int64(2), mock.Anything).Return(nil, verr)

		resp := p.do(t, http.MethodPost, "/users/2/edit", sid, url.Values{})
		assertRedirect(t, resp, "/users/2/edit")
	})

	t.Run("чужая учетная запись", func(t *testing.T) {
		p := newTestPortal(t)
		sid := p.login(t, &entities.Identity{ID: 2})
		p.accounts.On("Edit", mock.Anything, sid, int64(3), mock.Anything).
			Return(nil, fmt.Errorf("edit: %w", services.ErrPermissionDenied))
		p.accounts.On("List", mock.Anything).Return([]*entities.User{}, nil)

		resp := p.do(t, http.MethodPost, "/users/3/edit", sid, url.Values{"name": {"X"}})
		assertRedirect(t, resp, "/register/list")

		page := p.do(t, http.MethodGet, "/register/list", sid, nil)
		assert.Contains(t, readBody(t, page), services.MsgPermissionDenied)
	})

	t.Run("email занят при редактировании", func(t *testing.T) {
		p := newTestPortal(t)
		sid := p.login(t, &entities.Identity{ID: 2})
		p.accounts.On("Edit", mock.Anything, sid, int64(2), mock.Anything).
			Return(nil, fmt.Errorf("edit: %w", services.ErrEmailAlreadyExists))
		p.accounts.On("List", mock.Anything).Return([]*entities.User{}, nil)

		resp := p.do(t, http.MethodPost, "/users/2/edit", sid, url.Values{"name": {"X"}})
		assertRedirect(t, resp, "/register/list")

		page := p.do(t, http.MethodGet, "/register/list", sid, nil)
		assert.Contains(t, readBody(t, page), services.MsgEmailInUse)
	})

	t.Run("анонимное редактирование", func(t *testing.T) {
		p := newTestPortal(t)
		sid := p.anonymous(t)
		p.accounts.On("Edit", mock.Anything, sid, int64(2), mock.Anything).
			Return(nil, fmt.Errorf("resolving actor: %w", services.ErrNotAuthenticated))

		resp := p.do(t, http.MethodPost, "/users/2/edit", sid, url.Values{"name": {"X"}})
		assertRedirect(t, resp, "/login")
	})

	t.Run("форма редактирования", func(t *testing.T) {
		p := newTestPortal(t)
		sid := p.login(t, &entities.Identity{ID: 2})
		p.accounts.On("GetEditable", mock.Anything, sid, int64(2)).
			Return(&entities.User{ID: 2, Name: "Bob", Email: "bob@example.com"}, nil)

		resp := p.do(t, http.MethodGet, "/users/2/edit", sid, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), `value="bob@example.com"`)
	})

	t.Run("удаление", func(t *testing.T) {
		p := newTestPortal(t)
		sid := p.login(t, &entities.Identity{ID: 1, Role: entities.RoleAdmin})
		p.accounts.On("Delete", mock.Anything, sid, int64(2)).Return(nil)
		p.accounts.On("List", mock.Anything).Return([]*entities.User{}, nil)

		resp := p.do(t, http.MethodPost, "/users/2/delete", sid, url.Values{})
		assertRedirect(t, resp, "/register/list")

		page := p.do(t, http.MethodGet, "/register/list", sid, nil)
		assert.Contains(t, readBody(t, page), services.MsgAccountDeleted)
	})

	t.Run("удаление отсутствующего пользователя", func(t *testing.T) {
		p := newTestPortal(t)
		sid := p.login(t, &entities.Identity{ID: 1, Role: entities.RoleAdmin})
		p.accounts.On("Delete", mock.Anything, sid, int64(99)).
			Return(fmt.Errorf("deleting user: %w", entities.ErrUserNotFound))
		p.accounts.On("List", mock.Anything).Return([]*entities.User{}, nil)

		resp := p.do(t, http.MethodPost, "/users/99/delete", sid, url.Values{})
		assertRedirect(t, resp, "/register/list")

		page := p.do(t, http.MethodGet, "/register/list", sid, nil)
		assert.Contains(t, readBody(t, page), services.MsgUserNotFound)
	})
}
