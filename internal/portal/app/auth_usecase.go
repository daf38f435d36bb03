package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"campusportal/internal/portal/domain/entities"
	"campusportal/internal/portal/domain/services"
	"campusportal/internal/portal/domain/validation"
	"campusportal/internal/portal/ports/api"
	"campusportal/internal/portal/ports/repositories"
	svc "campusportal/internal/portal/ports/services"
	"campusportal/pkg/logger"
)

const (
	methodRegister = "Register"
	methodLogin    = "Login"

	msgStartRegistration  = "starting user registration"
	msgRegistrationFailed = "registration form rejected"
	msgEmailExists        = "user with this email already exists"
	msgUserRegistered     = "user registered successfully"
	msgLoginAttempt       = "login attempt"
	msgLoginFormRejected  = "login form rejected"
	msgLoginNonExistent   = "login attempt with non-existent email"
	msgInvalidPassword    = "invalid password provided"
	msgUserLoggedIn       = "user logged in successfully"

	msgErrValidateForm      = "failed to run form validation"
	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrFindingUser       = "error finding user by email"
	msgErrVerifyingPassword = "error verifying password"

	errCtxValidatingForm     = "validating form"
	errCtxCheckingUser       = "checking existing user"
	errCtxEmailRegistered    = "email already registered"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
)

// AuthUseCaseImpl реализует регистрацию и проверку учетных данных.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	validator   *validation.Validator
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	validator *validation.Validator,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		validator:   validator,
	}
}

// Register создает учетную запись со стандартной ролью.
func (a *AuthUseCaseImpl) Register(ctx context.Context, in api.RegisterInput) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister))
	log.Debug(ctx, msgStartRegistration)

	res, err := a.validator.Validate(validation.FlowRegistration, in.Fields())
	if err != nil {
		log.Error(ctx, msgErrValidateForm, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingForm, err)
	}
	if err := res.Err(); err != nil {
		log.Debug(ctx, msgRegistrationFailed, zap.Int("errors", len(res.Errors())))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingForm, err)
	}

	email := res.Value(validation.FieldEmail)
	log = log.With(zap.String("email", email))

	exists, err := a.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if exists {
		log.Info(ctx, msgEmailExists)
		return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, services.ErrEmailAlreadyExists)
	}

	hash, err := a.passwordSvc.Hash(ctx, res.Value(validation.FieldPassword))
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	created, err := a.userRepo.Create(ctx, &entities.User{
		Name:         res.Value(validation.FieldName),
		Email:        email,
		PasswordHash: hash,
		Role:         entities.RoleUser,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailAlreadyExists) {
			log.Info(ctx, msgEmailExists)
			return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, err)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.Int64("user_id", created.ID))
	return created, nil
}

// Login проверяет учетные данные и возвращает проекцию пользователя без хэша.
// Неизвестный email и неверный пароль неразличимы для вызывающего.
func (a *AuthUseCaseImpl) Login(ctx context.Context, in api.LoginInput) (*entities.Identity, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin))
	log.Debug(ctx, msgLoginAttempt)

	res, err := a.validator.Validate(validation.FlowLogin, in.Fields())
	if err != nil {
		log.Error(ctx, msgErrValidateForm, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingForm, err)
	}
	if err := res.Err(); err != nil {
		log.Debug(ctx, msgLoginFormRejected, zap.Int("errors", len(res.Errors())))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingForm, err)
	}

	email := res.Value(validation.FieldEmail)
	password := res.Value(validation.FieldPassword)
	log = log.With(zap.String("email", email))

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Info(ctx, msgLoginNonExistent)
			_, _ = a.passwordSvc.Verify(ctx, password, a.passwordSvc.DecoyHash())
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Info(ctx, msgInvalidPassword, zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	log.Info(ctx, msgUserLoggedIn, zap.Int64("user_id", user.ID))
	return user.Identity(), nil
}
