package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"campusportal/internal/portal/domain/entities"
	"campusportal/internal/portal/domain/services"
	"campusportal/internal/portal/ports/repositories"
	"campusportal/pkg/logger"
)

// PgxPoolInterface - подмножество pgxpool.Pool, используемое репозиторием.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

const uniqueViolation = "23505"

const (
	queryFindByID = `
        SELECT id, name, email, password_hash, role, created_at
        FROM users
        WHERE id = $1
    `
	queryFindByEmail = `
        SELECT id, name, email, password_hash, role, created_at
        FROM users
        WHERE LOWER(email) = LOWER($1)
    `
	queryExistsByEmail = `
        SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))
    `
	queryCreate = `
        INSERT INTO users (name, email, password_hash, role)
        VALUES ($1, $2, $3, $4)
        RETURNING id, name, email, role, created_at
    `
	queryUpdate = `
        UPDATE users
        SET name = $2, email = $3
        WHERE id = $1
        RETURNING id, name, email, role, created_at
    `
	queryDelete = `DELETE FROM users WHERE id = $1`
	queryList   = `
        SELECT id, name, email, role, created_at
        FROM users
        ORDER BY created_at, id
    `
)

// UserRepository реализует repositories.UserRepository для Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	user, err := scanUser(r.pool.QueryRow(ctx, queryFindByID, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.Int64("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}

	return user, nil
}

// FindByEmail находит пользователя по email без учета регистра.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByEmail"))

	user, err := scanUser(r.pool.QueryRow(ctx, queryFindByEmail, email), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("email", email))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by email", zap.Error(err))
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}

	return user, nil
}

// ExistsByEmail проверяет, занят ли email.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, queryExistsByEmail, email).Scan(&exists); err != nil {
		logger.Log(ctx).Error(ctx, "error checking email",
			zap.String("repository", "user"), zap.String("method", "ExistsByEmail"), zap.Error(err))
		return false, fmt.Errorf("error checking email: %w", err)
	}
	return exists, nil
}

// Create создает нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	created, err := scanUser(r.pool.QueryRow(ctx, queryCreate,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role.String(),
	), false)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug(ctx, "email already exists", zap.String("email", user.Email))
			return nil, services.ErrEmailAlreadyExists
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	log.Info(ctx, "user created", zap.Int64("id", created.ID))
	return created, nil
}

// Update меняет имя и email пользователя.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Update"))

	updated, err := scanUser(r.pool.QueryRow(ctx, queryUpdate, user.ID, user.Name, user.Email), false)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			log.Debug(ctx, "user not found for update", zap.Int64("id", user.ID))
			return nil, entities.ErrUserNotFound
		case isUniqueViolation(err):
			log.Debug(ctx, "email already exists", zap.String("email", user.Email))
			return nil, services.ErrEmailAlreadyExists
		default:
			log.Error(ctx, "error updating user", zap.Error(err))
			return nil, fmt.Errorf("error updating user: %w", err)
		}
	}

	return updated, nil
}

// Delete удаляет пользователя. Возвращает false, если строки не было.
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Delete"))

	tag, err := r.pool.Exec(ctx, queryDelete, id)
	if err != nil {
		log.Error(ctx, "error deleting user", zap.Error(err))
		return false, fmt.Errorf("error deleting user: %w", err)
	}

	if tag.RowsAffected() == 0 {
		log.Debug(ctx, "user not found for deletion", zap.Int64("id", id))
		return false, nil
	}

	return true, nil
}

// List возвращает всех пользователей в порядке регистрации, без хэшей паролей.
func (r *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "List"))

	rows, err := r.pool.Query(ctx, queryList)
	if err != nil {
		log.Error(ctx, "error listing users", zap.Error(err))
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		user, err := scanUser(rows, false)
		if err != nil {
			log.Error(ctx, "error scanning user", zap.Error(err))
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating users", zap.Error(err))
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

func scanUser(row pgx.Row, withHash bool) (*entities.User, error) {
	var (
		user entities.User
		role string
	)

	dest := []any{&user.ID, &user.Name, &user.Email}
	if withHash {
		dest = append(dest, &user.PasswordHash)
	}
	dest = append(dest, &role, &user.CreatedAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	user.Role = entities.ParseRole(role)
	return &user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
