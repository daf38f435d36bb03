package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"campusportal/internal/portal/domain/services"
	svc "campusportal/internal/portal/ports/services"
)

const (
	errMsgFailedToGenerateHash = "failed to generate password hash"
	errMsgErrorComparingHash   = "error comparing password with hash"
)

// ServiceBcrypt реализует интерфейс PasswordService.
type ServiceBcrypt struct {
	cost int

	decoyOnce sync.Once
	decoy     string
}

// NewBcrypt создает новый экземпляр сервиса bcrypt.
// Стоимость вне допустимого диапазона заменяется стоимостью по умолчанию.
func NewBcrypt(cost int) svc.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &ServiceBcrypt{cost: cost}
}

// Hash хэширует пароль с помощью bcrypt.
func (s *ServiceBcrypt) Hash(_ context.Context, password string) (string, error) {
	if password == "" {
		return "", services.ErrInvalidPassword
	}

	hashedBytes, err := bcrypt.GenerateFromPassword(truncate(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", errMsgFailedToGenerateHash, services.ErrHashingFailed, err)
	}

	return string(hashedBytes), nil
}

// Verify проверяет соответствие пароля хэшу за время, не зависящее от места расхождения.
func (s *ServiceBcrypt) Verify(_ context.Context, password, hash string) (bool, error) {
	if password == "" || hash == "" {
		return false, services.ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), truncate(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", errMsgErrorComparingHash, err)
	}

	return true, nil
}

// DecoyHash лениво строит хэш случайного пароля с рабочей стоимостью сервиса.
// Сверка с ним при неизвестном email стоит столько же, сколько сверка
// с хэшем существующей учетной записи.
func (s *ServiceBcrypt) DecoyHash() string {
	s.decoyOnce.Do(func() {
		hashedBytes, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.cost)
		if err == nil {
			s.decoy = string(hashedBytes)
		}
	})
	return s.decoy
}

// truncate обрезает вход до 72 байт: bcrypt не учитывает остаток.
func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > services.MaxBcryptInputBytes {
		b = b[:services.MaxBcryptInputBytes]
	}
	return b
}
