package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"campusportal/internal/portal/domain/entities"
	svc "campusportal/internal/portal/ports/services"
	"campusportal/internal/portal/resilience"
	"campusportal/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodSave    = "save"
	LogMethodLoad    = "load"
	LogMethodReplace = "replace"
	LogMethodDelete  = "delete"

	ErrorFailedToSave    = "failed to save session in redis"
	ErrorFailedToLoad    = "failed to load session from redis"
	ErrorFailedToReplace = "failed to replace session in redis"
	ErrorFailedToDelete  = "failed to delete session from redis"
)

// IsTransient отличает сбои Redis от ожидаемого отсутствия записи.
func IsTransient(err error) bool {
	return !errors.Is(err, redis.Nil) && !errors.Is(err, entities.ErrSessionNotFound)
}

// SessionStore реализует svc.SessionStore поверх Redis.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
	guard  *resilience.Guard
}

// NewSessionStore создает хранилище сессий с временем жизни записи ttl.
func NewSessionStore(client *redis.Client, ttl time.Duration, guard *resilience.Guard) svc.SessionStore {
	return &SessionStore{client: client, ttl: ttl, guard: guard}
}

// Save записывает сессию, перезаписывая существующую.
func (s *SessionStore) Save(ctx context.Context, sessionID string, record []byte) error {
	err := s.guard.Do(ctx, LogMethodSave, func(ctx context.Context) error {
		return s.client.Set(ctx, sessionKey(sessionID), record, s.ttl).Err()
	})
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToSave, zap.String("method", LogMethodSave), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSave, err)
	}
	return nil
}

// Load читает сессию. Отсутствующая запись дает entities.ErrSessionNotFound.
func (s *SessionStore) Load(ctx context.Context, sessionID string) ([]byte, error) {
	record, err := resilience.Call(ctx, s.guard, LogMethodLoad, func(ctx context.Context) ([]byte, error) {
		return s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	})
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, entities.ErrSessionNotFound
		}
		logger.Log(ctx).Error(ctx, ErrorFailedToLoad, zap.String("method", LogMethodLoad), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToLoad, err)
	}
	return record, nil
}

// Replace обновляет существующую сессию, сохраняя оставшееся время жизни.
func (s *SessionStore) Replace(ctx context.Context, sessionID string, record []byte) error {
	err := s.guard.Do(ctx, LogMethodReplace, func(ctx context.Context) error {
		return s.client.SetArgs(ctx, sessionKey(sessionID), record, redis.SetArgs{
			Mode:    "XX",
			KeepTTL: true,
		}).Err()
	})
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entities.ErrSessionNotFound
		}
		logger.Log(ctx).Error(ctx, ErrorFailedToReplace, zap.String("method", LogMethodReplace), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToReplace, err)
	}
	return nil
}

// Delete удаляет сессию и ее неотправленные сообщения. Отсутствие записи не ошибка.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	err := s.guard.Do(ctx, LogMethodDelete, func(ctx context.Context) error {
		return s.client.Del(ctx, sessionKey(sessionID), feedbackKey(sessionID)).Err()
	})
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToDelete, zap.String("method", LogMethodDelete), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}
	return nil
}
