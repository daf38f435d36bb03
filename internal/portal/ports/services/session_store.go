package services

import (
	"context"

	"campusportal/internal/portal/domain/entities"
)

// SessionStore хранит закодированные записи сессий по идентификатору.
// Load и Replace возвращают entities.ErrSessionNotFound для отсутствующей записи.
type SessionStore interface {
	Save(ctx context.Context, sessionID string, record []byte) error

	Load(ctx context.Context, sessionID string) ([]byte, error)

	Replace(ctx context.Context, sessionID string, record []byte) error

	Delete(ctx context.Context, sessionID string) error
}

// FeedbackStore хранит одноразовые сообщения, привязанные к сессии.
type FeedbackStore interface {
	Append(ctx context.Context, sessionID string, msg entities.FeedbackMessage) error

	Drain(ctx context.Context, sessionID string) ([]entities.FeedbackMessage, error)
}
