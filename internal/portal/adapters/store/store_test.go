package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusportal/internal/portal/adapters/store"
	"campusportal/internal/portal/domain/entities"
	"campusportal/internal/portal/resilience"
)

func mockRedisServer(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return s, client
}

func fastGuard() *resilience.Guard {
	return resilience.NewGuard("sessions",
		resilience.DefaultCircuitBreakerConfig(),
		resilience.RetryConfig{MaxAttempts: 2, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond, BackoffFactor: 1},
		store.IsTransient)
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	s, client := mockRedisServer(t)
	sessions := store.NewSessionStore(client, time.Hour, fastGuard())

	t.Run("save и load", func(t *testing.T) {
		require.NoError(t, sessions.Save(ctx, "abc", []byte(`{"id":1}`)))

		record, err := sessions.Load(ctx, "abc")
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":1}`, string(record))
		assert.Equal(t, time.Hour, s.TTL("portal:session:abc"))
	})

	t.Run("replace сохраняет TTL", func(t *testing.T) {
		s.FastForward(10 * time.Minute)
		require.NoError(t, sessions.Replace(ctx, "abc", []byte(`{"id":1,"name":"new"}`)))

		record, err := sessions.Load(ctx, "abc")
		require.NoError(t, err)
		assert.Contains(t, string(record), "new")
		assert.Equal(t, 50*time.Minute, s.TTL("portal:session:abc"))
	})

	t.Run("replace отсутствующей сессии", func(t *testing.T) {
		err := sessions.Replace(ctx, "missing", []byte(`{}`))
		require.ErrorIs(t, err, entities.ErrSessionNotFound)
		assert.False(t, s.Exists("portal:session:missing"))
	})

	t.Run("load отсутствующей сессии", func(t *testing.T) {
		_, err := sessions.Load(ctx, "missing")
		require.ErrorIs(t, err, entities.ErrSessionNotFound)
	})

	t.Run("истечение срока", func(t *testing.T) {
		require.NoError(t, sessions.Save(ctx, "short", []byte(`{}`)))
		s.FastForward(2 * time.Hour)
		_, err := sessions.Load(ctx, "short")
		require.ErrorIs(t, err, entities.ErrSessionNotFound)
	})

	t.Run("delete удаляет сессию и сообщения", func(t *testing.T) {
		require.NoError(t, sessions.Save(ctx, "gone", []byte(`{}`)))
		_, err := s.RPush("portal:flash:gone", `{"category":"success","text":"hi"}`)
		require.NoError(t, err)

		require.NoError(t, sessions.Delete(ctx, "gone"))
		assert.False(t, s.Exists("portal:session:gone"))
		assert.False(t, s.Exists("portal:flash:gone"))

		require.NoError(t, sessions.Delete(ctx, "gone"))
	})
}

func TestSessionStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	s, client := mockRedisServer(t)
	sessions := store.NewSessionStore(client, time.Hour, fastGuard())

	s.SetError("ERR simulated outage")
	defer s.SetError("")

	_, err := sessions.Load(ctx, "abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, entities.ErrSessionNotFound)

	require.Error(t, sessions.Delete(ctx, "abc"))
}

func TestFeedbackStore(t *testing.T) {
	ctx := context.Background()
	s, client := mockRedisServer(t)
	feedback := store.NewFeedbackStore(client, 10*time.Minute)

	first := entities.FeedbackMessage{Category: entities.FeedbackError, Text: "Passwords must match"}
	second := entities.FeedbackMessage{Category: entities.FeedbackWarning, Text: "Email already registered"}

	require.NoError(t, feedback.Append(ctx, "sid", first))
	require.NoError(t, feedback.Append(ctx, "sid", second))
	assert.Equal(t, 10*time.Minute, s.TTL("portal:flash:sid"))

	msgs, err := feedback.Drain(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, []entities.FeedbackMessage{first, second}, msgs)

	msgs, err = feedback.Drain(ctx, "sid")
	require.NoError(t, err)
	assert.Empty(t, msgs)
	assert.False(t, s.Exists("portal:flash:sid"))

	_, err = s.RPush("portal:flash:bad", "not json", `{"category":"success","text":"ok"}`)
	require.NoError(t, err)
	msgs, err = feedback.Drain(ctx, "bad")
	require.NoError(t, err)
	assert.Equal(t, []entities.FeedbackMessage{{Category: entities.FeedbackSuccess, Text: "ok"}}, msgs)
}
