package api

import (
	"context"

	"campusportal/internal/portal/domain/entities"
)

// SessionUseCase управляет жизненным циклом сессии.
type SessionUseCase interface {
	NewSessionID() string

	Establish(ctx context.Context, sessionID string, identity *entities.Identity) error

	Rotate(ctx context.Context, previousID string, identity *entities.Identity) (string, error)

	Current(ctx context.Context, sessionID string) (*entities.Identity, error)

	Refresh(ctx context.Context, sessionID string, identity *entities.Identity) error

	Destroy(ctx context.Context, sessionID string) error
}

// FeedbackUseCase - канал одноразовых сообщений между запросами.
type FeedbackUseCase interface {
	Push(ctx context.Context, sessionID string, category entities.FeedbackCategory, text string) error

	Consume(ctx context.Context, sessionID string) ([]entities.FeedbackMessage, error)
}
