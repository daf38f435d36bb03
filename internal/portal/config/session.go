package config

import (
	"strings"
	"time"
)

// SessionConfig содержит параметры cookie сессии и одноразовых сообщений.
type SessionConfig struct {
	CookieName  string        `yaml:"cookie_name" env:"PORTAL_SESSION_COOKIE_NAME" env-default:"portal_sid"`
	TTL         time.Duration `yaml:"ttl" env:"PORTAL_SESSION_TTL" env-default:"24h"`
	Secure      bool          `yaml:"secure" env:"PORTAL_SESSION_SECURE" env-default:"false"`
	SameSite    string        `yaml:"same_site" env:"PORTAL_SESSION_SAME_SITE" env-default:"Lax"`
	FeedbackTTL time.Duration `yaml:"feedback_ttl" env:"PORTAL_SESSION_FEEDBACK_TTL" env-default:"10m"`
}

// GetSameSite возвращает нормализованное значение атрибута SameSite.
func (s *SessionConfig) GetSameSite() string {
	switch strings.ToLower(s.SameSite) {
	case "strict":
		return "Strict"
	case "none":
		return "None"
	default:
		return "Lax"
	}
}
