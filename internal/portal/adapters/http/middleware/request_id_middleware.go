package middleware

import (
	"github.com/gofiber/fiber/v3"

	"campusportal/pkg/logger"
)

// HeaderRequestID - заголовок, в котором передается идентификатор запроса.
const HeaderRequestID = "X-Request-ID"

const maxRequestIDLength = 128

// NewRequestIDMiddleware берет идентификатор запроса из заголовка или создает новый
// и кладет в контекст запроса вместе с логгером.
func NewRequestIDMiddleware(log *logger.Logger) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := ctx.Get(HeaderRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = logger.GenerateRequestID()
		}

		requestCtx := logger.NewRequestIDContext(ctx.Context(), requestID)
		if log != nil {
			requestCtx = logger.NewContext(requestCtx, log)
		}

		ctx.Locals(LocalsRequestContext, requestCtx)
		ctx.Set(HeaderRequestID, requestID)

		return ctx.Next()
	}
}
