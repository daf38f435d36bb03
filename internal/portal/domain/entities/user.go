package entities

import (
	"errors"
	"time"
)

// ErrUserNotFound возвращается, если учетная запись не найдена.
var ErrUserNotFound = errors.New("user not found")

// User представляет учетную запись, хранимую в базе.
// PasswordHash никогда не покидает слой аутентификации и не сериализуется.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity - проекция пользователя, хранимая в сессии. Секретов не содержит.
type Identity struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity возвращает проекцию пользователя без хэша пароля.
func (u *User) Identity() *Identity {
	return &Identity{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// IsAdmin сообщает, есть ли у владельца сессии права администратора.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}
