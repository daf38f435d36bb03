// Package store хранит сессии и одноразовые сообщения в Redis.
package store

const (
	sessionKeyPrefix  = "portal:session:"
	feedbackKeyPrefix = "portal:flash:"
)

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func feedbackKey(sessionID string) string {
	return feedbackKeyPrefix + sessionID
}
