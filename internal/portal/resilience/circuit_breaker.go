// Package resilience защищает обращения к хранилищу сессий повторами и
// автоматическим выключателем.
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"campusportal/pkg/logger"
)

// CircuitState представляет состояние выключателя.
type CircuitState int

// Состояния выключателя.
const (
	StateClosed CircuitState = iota
	StateOpen
	StateHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Константы для логирования.
const (
	LogCircuitTrip   = "circuit breaker tripped"
	LogCircuitReset  = "circuit breaker reset"
	LogCircuitProbe  = "circuit breaker allowing probe"
	LogCircuitReject = "circuit breaker rejected request"
)

// ErrCircuitOpen возвращается, пока выключатель разомкнут.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig содержит настройки выключателя.
type CircuitBreakerConfig struct {
	ErrorThreshold   int
	Timeout          time.Duration
	SuccessThreshold int
}

// DefaultCircuitBreakerConfig возвращает конфигурацию по умолчанию.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		ErrorThreshold:   5,
		Timeout:          10 * time.Second,
		SuccessThreshold: 2,
	}
}

// CircuitBreaker размыкается после серии сбоев и пропускает пробные
// запросы по истечении Timeout.
type CircuitBreaker struct {
	name   string
	config CircuitBreakerConfig
	now    func() time.Time

	mu          sync.Mutex
	state       CircuitState
	failures    int
	successes   int
	lastChanged time.Time
}

// NewCircuitBreaker создает выключатель в замкнутом состоянии.
func NewCircuitBreaker(name string, config CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		name:        name,
		config:      config,
		now:         time.Now,
		state:       StateClosed,
		lastChanged: time.Now(),
	}
}

// Allow сообщает, можно ли выполнить запрос сейчас.
func (cb *CircuitBreaker) Allow(ctx context.Context) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if cb.now().Sub(cb.lastChanged) < cb.config.Timeout {
			cb.log(ctx).Debug(ctx, LogCircuitReject)
			return false
		}
		cb.setState(StateHalfOpen)
		cb.log(ctx).Info(ctx, LogCircuitProbe)
		return true
	default:
		return true
	}
}

// Record учитывает исход запроса. failed=false означает успех.
func (cb *CircuitBreaker) Record(ctx context.Context, failed bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if failed {
		cb.failures++
		if cb.state == StateHalfOpen || cb.failures >= cb.config.ErrorThreshold {
			if cb.state != StateOpen {
				cb.log(ctx).Warn(ctx, LogCircuitTrip, zap.Int("failures", cb.failures))
			}
			cb.setState(StateOpen)
		}
		return
	}

	switch cb.state {
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.config.SuccessThreshold {
			cb.setState(StateClosed)
			cb.log(ctx).Info(ctx, LogCircuitReset)
		}
	default:
		cb.failures = 0
	}
}

// State возвращает текущее состояние.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) setState(s CircuitState) {
	cb.state = s
	cb.lastChanged = cb.now()
	cb.failures = 0
	cb.successes = 0
}

func (cb *CircuitBreaker) log(ctx context.Context) *logger.Logger {
	return logger.Log(ctx).With(
		zap.String("circuit_breaker", cb.name),
		zap.Stringer("circuit_state", cb.state))
}
