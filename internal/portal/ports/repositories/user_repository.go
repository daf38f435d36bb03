package repositories

import (
	"context"

	"campusportal/internal/portal/domain/entities"
)

// UserRepository определяет операции хранилища учетных записей.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id int64) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)

	Update(ctx context.Context, user *entities.User) (*entities.User, error)

	Delete(ctx context.Context, id int64) (bool, error)

	List(ctx context.Context) ([]*entities.User, error)
}
