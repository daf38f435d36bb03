package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"campusportal/internal/portal/domain/entities"
	"campusportal/internal/portal/domain/services"
	"campusportal/internal/portal/ports/api"
	"campusportal/pkg/logger"
)

const (
	LogSessionAssigned     = "assigned new session id"
	LogSessionLookupFailed = "session lookup failed, continuing as anonymous"
	LogLoginPromptFailed   = "failed to push login prompt"
)

// NewSessionMiddleware выдает идентификатор сессии посетителю без него и
// определяет владельца сессии.
func NewSessionMiddleware(sessions api.SessionUseCase, cookie *SessionCookie) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "session"))

		sessionID := ctx.Cookies(cookie.Name)
		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = sessions.NewSessionID()
			cookie.Set(ctx, sessionID)
			log.Debug(requestCtx, LogSessionAssigned)
			SetSessionID(ctx, sessionID)
			return ctx.Next()
		}
		SetSessionID(ctx, sessionID)

		identity, err := sessions.Current(requestCtx, sessionID)
		if err != nil {
			log.Warn(requestCtx, LogSessionLookupFailed, zap.Error(err))
		} else if identity != nil {
			ctx.Locals(LocalsIdentity, identity)
		}

		return ctx.Next()
	}
}

// NewRequireAuthentication пропускает только владельцев сессии. Анонимный
// посетитель получает сообщение и перенаправляется на страницу входа.
func NewRequireAuthentication(feedback api.FeedbackUseCase, loginPath string) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		if Identity(ctx) != nil {
			return ctx.Next()
		}

		requestCtx := RequestContext(ctx)
		if err := feedback.Push(requestCtx, SessionID(ctx), entities.FeedbackError, services.MsgLoginRequired); err != nil {
			logger.Log(requestCtx).Warn(requestCtx, LogLoginPromptFailed, zap.Error(err))
		}
		return ctx.Redirect().Status(fiber.StatusSeeOther).To(loginPath)
	}
}
