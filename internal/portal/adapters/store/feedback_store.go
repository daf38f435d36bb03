package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"campusportal/internal/portal/domain/entities"
	svc "campusportal/internal/portal/ports/services"
	"campusportal/pkg/logger"
)

const (
	LogMethodAppend = "append"
	LogMethodDrain  = "drain"

	LogFeedbackUndecodable = "skipping undecodable feedback message"

	ErrorFailedToAppend = "failed to append feedback in redis"
	ErrorFailedToDrain  = "failed to drain feedback from redis"
	ErrorFailedToEncode = "failed to encode feedback"
)

// FeedbackStore реализует svc.FeedbackStore списками Redis.
type FeedbackStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFeedbackStore создает хранилище сообщений с временем жизни ttl.
func NewFeedbackStore(client *redis.Client, ttl time.Duration) svc.FeedbackStore {
	return &FeedbackStore{client: client, ttl: ttl}
}

// Append добавляет сообщение в конец очереди сессии.
// Повтор не выполняется: RPUSH не идемпотентен.
func (f *FeedbackStore) Append(ctx context.Context, sessionID string, msg entities.FeedbackMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToEncode, err)
	}

	key := feedbackKey(sessionID)
	_, err = f.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, payload)
		pipe.Expire(ctx, key, f.ttl)
		return nil
	})
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToAppend, zap.String("method", LogMethodAppend), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToAppend, err)
	}
	return nil
}

// Drain атомарно забирает все сообщения сессии в порядке добавления.
func (f *FeedbackStore) Drain(ctx context.Context, sessionID string) ([]entities.FeedbackMessage, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodDrain))
	key := feedbackKey(sessionID)

	var items *redis.StringSliceCmd
	_, err := f.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		items = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		log.Error(ctx, ErrorFailedToDrain, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToDrain, err)
	}

	raw := items.Val()
	if len(raw) == 0 {
		return nil, nil
	}

	msgs := make([]entities.FeedbackMessage, 0, len(raw))
	for _, item := range raw {
		var msg entities.FeedbackMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil || !msg.Category.Valid() {
			log.Warn(ctx, LogFeedbackUndecodable, zap.Error(err))
			continue
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}
