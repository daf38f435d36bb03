package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"campusportal/pkg/logger"
)

// PanicResponder отвечает клиенту после перехваченной паники.
type PanicResponder func(ctx fiber.Ctx) error

// NewRecoveryMiddleware перехватывает панику, пишет стек в лог и
// отвечает страницей без внутренних подробностей.
func NewRecoveryMiddleware(respond PanicResponder) fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		requestCtx := RequestContext(ctx)

		defer func() {
			if r := recover(); r != nil {
				logger.Log(requestCtx).Error(requestCtx, "server panic",
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)

				ctx.Status(fiber.StatusInternalServerError)
				if respond == nil {
					err = ctx.SendString("Internal Server Error")
					return
				}
				err = respond(ctx)
			}
		}()

		return ctx.Next()
	}
}
