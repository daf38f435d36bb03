package api

import (
	"context"

	"campusportal/internal/portal/domain/entities"
	"campusportal/internal/portal/domain/validation"
)

// EditInput - сырые поля формы редактирования.
type EditInput struct {
	Name  string
	Email string
}

// Fields возвращает поля в виде, понятном валидатору.
func (in EditInput) Fields() map[string]string {
	return map[string]string{
		validation.FieldName:  in.Name,
		validation.FieldEmail: in.Email,
	}
}

// AccountUseCase определяет операции над учетными записями от имени владельца сессии.
type AccountUseCase interface {
	List(ctx context.Context) ([]*entities.User, error)

	GetEditable(ctx context.Context, sessionID string, targetID int64) (*entities.User, error)

	Edit(ctx context.Context, sessionID string, targetID int64, in EditInput) (*entities.User, error)

	Delete(ctx context.Context, sessionID string, targetID int64) error
}
