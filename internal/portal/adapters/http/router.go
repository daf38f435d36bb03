// Package http содержит компоненты для HTTP сервера портала.
package http

import (
	"github.com/gofiber/fiber/v3"

	"campusportal/internal/portal/adapters/http/handlers"
	"campusportal/internal/portal/adapters/http/middleware"
	"campusportal/internal/portal/adapters/http/views"
	"campusportal/internal/portal/ports/api"
	"campusportal/pkg/logger"
)

// Dependencies - порты и компоненты, нужные маршрутизатору.
type Dependencies struct {
	Auth     api.AuthUseCase
	Accounts api.AccountUseCase
	Sessions api.SessionUseCase
	Feedback api.FeedbackUseCase
	Renderer *views.Renderer
	Cookie   *middleware.SessionCookie
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, log *logger.Logger, deps Dependencies) {
	h := handlers.NewHandler(deps.Auth, deps.Accounts, deps.Sessions, deps.Feedback, deps.Renderer, deps.Cookie)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware(log))
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware(h.ServerError))
	app.Use(middleware.NewSessionMiddleware(deps.Sessions, deps.Cookie))

	requireAuth := middleware.NewRequireAuthentication(deps.Feedback, handlers.PathLogin)

	// Публичные страницы.
	app.Get(handlers.PathHome, h.Home)
	app.Get(handlers.PathLogin, h.LoginForm)
	app.Get(handlers.PathRegister, h.RegisterForm)
	app.Get(handlers.PathUsers, h.Users)

	// Формы.
	app.Post(handlers.PathLogin, h.Login)
	app.Post(handlers.PathLogout, h.Logout)
	app.Post(handlers.PathRegister, h.Register)
	app.Post(handlers.PathEditUser, h.Edit)
	app.Post(handlers.PathDelUser, h.Delete)

	// Защищенные страницы.
	app.Get(handlers.PathDashboard, requireAuth, h.Dashboard)
	app.Get(handlers.PathEditUser, requireAuth, h.EditForm)

	// Обработчик для несуществующих маршрутов.
	app.Use(h.NotFound)
}
