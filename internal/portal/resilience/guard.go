package resilience

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"campusportal/pkg/logger"
)

// Guard объединяет выключатель и повторы для идемпотентных вызовов хранилища.
type Guard struct {
	name      string
	breaker   *CircuitBreaker
	retry     *Retry
	transient func(error) bool
}

// NewGuard создает защиту. transient отличает сбои инфраструктуры от
// ожидаемых ответов хранилища; только сбои повторяются и размыкают выключатель.
func NewGuard(name string, breaker CircuitBreakerConfig, retry RetryConfig, transient func(error) bool) *Guard {
	if transient == nil {
		transient = func(error) bool { return true }
	}
	isTransient := func(err error) bool {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) && transient(err)
	}
	return &Guard{
		name:      name,
		breaker:   NewCircuitBreaker(name, breaker),
		retry:     NewRetry(name, retry, isTransient),
		transient: isTransient,
	}
}

// NewDefaultGuard создает защиту с настройками по умолчанию.
func NewDefaultGuard(name string, transient func(error) bool) *Guard {
	return NewGuard(name, DefaultCircuitBreakerConfig(), DefaultRetryConfig(), transient)
}

// Do выполняет операцию под защитой.
func (g *Guard) Do(ctx context.Context, operation string, fn func(context.Context) error) error {
	if !g.breaker.Allow(ctx) {
		logger.Log(ctx).Warn(ctx, LogCircuitReject, zap.String("guard", g.name), zap.String("operation", operation))
		return ErrCircuitOpen
	}

	err := g.retry.Execute(ctx, fn)
	g.breaker.Record(ctx, err != nil && g.transient(err))
	return err
}

// Breaker возвращает выключатель защиты.
func (g *Guard) Breaker() *CircuitBreaker {
	return g.breaker
}

// Call выполняет операцию с результатом под защитой g.
func Call[T any](ctx context.Context, g *Guard, operation string, fn func(context.Context) (T, error)) (T, error) {
	var result T
	err := g.Do(ctx, operation, func(ctx context.Context) error {
		var err error
		result, err = fn(ctx)
		return err
	})
	return result, err
}
