package api

import (
	"context"

	"campusportal/internal/portal/domain/entities"
	"campusportal/internal/portal/domain/validation"
)

// RegisterInput - сырые поля формы регистрации.
type RegisterInput struct {
	Name            string
	Email           string
	EmailConfirm    string
	Password        string
	PasswordConfirm string
}

// Fields возвращает поля в виде, понятном валидатору.
func (in RegisterInput) Fields() map[string]string {
	return map[string]string{
		validation.FieldName:            in.Name,
		validation.FieldEmail:           in.Email,
		validation.FieldEmailConfirm:    in.EmailConfirm,
		validation.FieldPassword:        in.Password,
		validation.FieldPasswordConfirm: in.PasswordConfirm,
	}
}

// LoginInput - сырые поля формы входа.
type LoginInput struct {
	Email    string
	Password string
}

// Fields возвращает поля в виде, понятном валидатору.
func (in LoginInput) Fields() map[string]string {
	return map[string]string{
		validation.FieldEmail:    in.Email,
		validation.FieldPassword: in.Password,
	}
}

// AuthUseCase определяет основной порт для операций аутентификации.
type AuthUseCase interface {
	Register(ctx context.Context, in RegisterInput) (*entities.User, error)

	Login(ctx context.Context, in LoginInput) (*entities.Identity, error)
}
