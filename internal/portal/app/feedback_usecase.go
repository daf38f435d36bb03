package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"campusportal/internal/portal/domain/entities"
	"campusportal/internal/portal/ports/api"
	svc "campusportal/internal/portal/ports/services"
	"campusportal/pkg/logger"
)

const (
	methodPush    = "Push"
	methodConsume = "Consume"

	msgErrPushFeedback    = "failed to push feedback message"
	msgErrConsumeFeedback = "failed to consume feedback messages"

	errCtxPushingFeedback   = "pushing feedback"
	errCtxConsumingFeedback = "consuming feedback"
)

// FeedbackUseCaseImpl реализует канал одноразовых сообщений.
type FeedbackUseCaseImpl struct {
	store svc.FeedbackStore
}

// NewFeedbackUseCase создает канал сообщений поверх хранилища.
func NewFeedbackUseCase(store svc.FeedbackStore) api.FeedbackUseCase {
	return &FeedbackUseCaseImpl{store: store}
}

// Push добавляет сообщение для показа на следующей странице.
func (f *FeedbackUseCaseImpl) Push(ctx context.Context, sessionID string, category entities.FeedbackCategory, text string) error {
	if !category.Valid() {
		return fmt.Errorf("%s: %w: %q", errCtxPushingFeedback, entities.ErrInvalidFeedbackCategory, category)
	}
	if sessionID == "" {
		return fmt.Errorf("%s: %w", errCtxPushingFeedback, entities.ErrEmptySessionID)
	}

	if err := f.store.Append(ctx, sessionID, entities.FeedbackMessage{Category: category, Text: text}); err != nil {
		logger.Log(ctx).Error(ctx, msgErrPushFeedback, zap.String("method", methodPush), zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxPushingFeedback, err)
	}
	return nil
}

// Consume возвращает сообщения в порядке добавления и удаляет их.
func (f *FeedbackUseCaseImpl) Consume(ctx context.Context, sessionID string) ([]entities.FeedbackMessage, error) {
	if sessionID == "" {
		return nil, nil
	}

	msgs, err := f.store.Drain(ctx, sessionID)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrConsumeFeedback, zap.String("method", methodConsume), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxConsumingFeedback, err)
	}
	return msgs, nil
}
