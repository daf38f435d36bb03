// Package middleware содержит промежуточное ПО для HTTP обработчиков портала.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"campusportal/internal/portal/domain/entities"
)

// Ключи значений запроса.
const (
	LocalsRequestContext = "portal.request_ctx"
	LocalsSessionID      = "portal.session_id"
	LocalsIdentity       = "portal.identity"
)

// RequestContext возвращает контекст запроса с логгером и request id.
func RequestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(LocalsRequestContext).(context.Context); ok && ctx != nil {
		return ctx
	}
	return c.Context()
}

// SessionID возвращает идентификатор сессии текущего запроса.
func SessionID(c fiber.Ctx) string {
	sid, _ := c.Locals(LocalsSessionID).(string)
	return sid
}

// SetSessionID запоминает идентификатор сессии до конца запроса.
func SetSessionID(c fiber.Ctx, sessionID string) {
	c.Locals(LocalsSessionID, sessionID)
}

// Identity возвращает владельца сессии или nil.
func Identity(c fiber.Ctx) *entities.Identity {
	identity, _ := c.Locals(LocalsIdentity).(*entities.Identity)
	return identity
}
