// Package handlers содержит HTTP обработчики страниц и форм портала.
package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"campusportal/internal/portal/adapters/http/middleware"
	"campusportal/internal/portal/adapters/http/views"
	"campusportal/internal/portal/domain/entities"
	"campusportal/internal/portal/ports/api"
	"campusportal/pkg/logger"
)

// Пути страниц.
const (
	PathHome      = "/"
	PathLogin     = "/login"
	PathLogout    = "/logout"
	PathRegister  = "/register"
	PathUsers     = "/register/list"
	PathDashboard = "/dashboard"
	PathEditUser  = "/users/:id/edit"
	PathDelUser   = "/users/:id/delete"
)

// Константы для логирования.
const (
	LogFeedbackPushFailed    = "failed to push feedback message"
	LogFeedbackConsumeFailed = "failed to consume feedback messages"
	LogRenderFailed          = "failed to render page"
	LogRequestFailed         = "request failed on infrastructure error"

	ErrorRenderFallback = "Internal Server Error"
)

// Handler содержит HTTP обработчики портала.
type Handler struct {
	auth     api.AuthUseCase
	accounts api.AccountUseCase
	sessions api.SessionUseCase
	feedback api.FeedbackUseCase
	renderer *views.Renderer
	cookie   *middleware.SessionCookie
}

// NewHandler создает новый экземпляр обработчика.
func NewHandler(
	auth api.AuthUseCase,
	accounts api.AccountUseCase,
	sessions api.SessionUseCase,
	feedback api.FeedbackUseCase,
	renderer *views.Renderer,
	cookie *middleware.SessionCookie,
) *Handler {
	return &Handler{
		auth:     auth,
		accounts: accounts,
		sessions: sessions,
		feedback: feedback,
		renderer: renderer,
		cookie:   cookie,
	}
}

// flash кладет сообщения в канал сессии текущего запроса. Ошибка канала
// не прерывает запрос.
func (h *Handler) flash(c fiber.Ctx, category entities.FeedbackCategory, texts ...string) {
	requestCtx := middleware.RequestContext(c)
	sessionID := middleware.SessionID(c)

	for _, text := range texts {
		if err := h.feedback.Push(requestCtx, sessionID, category, text); err != nil {
			logger.Log(requestCtx).Warn(requestCtx, LogFeedbackPushFailed,
				zap.String("category", string(category)),
				zap.Error(err),
			)
			return
		}
	}
}

// newPage собирает данные страницы и забирает накопленные сообщения.
func (h *Handler) newPage(c fiber.Ctx, title string) *views.Page {
	requestCtx := middleware.RequestContext(c)

	messages, err := h.feedback.Consume(requestCtx, middleware.SessionID(c))
	if err != nil {
		logger.Log(requestCtx).Warn(requestCtx, LogFeedbackConsumeFailed, zap.Error(err))
	}

	return &views.Page{
		Title:    title,
		Identity: middleware.Identity(c),
		Feedback: messages,
	}
}

func (h *Handler) render(c fiber.Ctx, status int, name string, page *views.Page) error {
	page.Status = status
	body, err := h.renderer.Render(name, page)
	if err != nil {
		requestCtx := middleware.RequestContext(c)
		logger.Log(requestCtx).Error(requestCtx, LogRenderFailed, zap.String("page", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString(ErrorRenderFallback)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(body)
}

func redirect(c fiber.Ctx, path string) error {
	return c.Redirect().Status(fiber.StatusSeeOther).To(path)
}
