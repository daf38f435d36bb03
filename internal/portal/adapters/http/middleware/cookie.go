package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
)

// SessionCookie описывает cookie, в которой передается идентификатор сессии.
type SessionCookie struct {
	Name     string
	TTL      time.Duration
	Secure   bool
	SameSite string
}

// Set выдает клиенту cookie с идентификатором сессии.
func (s *SessionCookie) Set(c fiber.Ctx, sessionID string) {
	c.Cookie(&fiber.Cookie{
		Name:     s.Name,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(s.TTL.Seconds()),
		Expires:  time.Now().Add(s.TTL),
		Secure:   s.Secure,
		HTTPOnly: true,
		SameSite: s.SameSite,
	})
}

// Clear просит клиента удалить cookie сессии.
func (s *SessionCookie) Clear(c fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     s.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0).UTC(),
		Secure:   s.Secure,
		HTTPOnly: true,
		SameSite: s.SameSite,
	})
}
