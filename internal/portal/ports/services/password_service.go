package services

import "context"

// PasswordService определяет операции для манипулирования паролем.
type PasswordService interface {
	Hash(ctx context.Context, password string) (string, error)

	Verify(ctx context.Context, password, hash string) (bool, error)

	// DecoyHash возвращает хэш случайного пароля с той же стоимостью, что и Hash.
	DecoyHash() string
}
