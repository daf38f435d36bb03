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
	"campusportal/pkg/logger"
)

const (
	methodList        = "List"
	methodGetEditable = "GetEditable"
	methodEdit        = "Edit"
	methodDelete      = "Delete"

	msgEditFormRejected = "edit form rejected"
	msgTargetNotFound   = "target user not found"
	msgEditDenied       = "edit denied"
	msgDeleteDenied     = "delete denied"
	msgEmailTaken       = "email already in use by another account"
	msgUserUpdated      = "user updated successfully"
	msgUserDeleted      = "user deleted successfully"

	msgErrListUsers        = "failed to list users"
	msgErrFindTarget       = "failed to find target user"
	msgErrUpdateUser       = "failed to update user"
	msgErrDeleteUser       = "failed to delete user"
	msgErrRefreshOwnRecord = "failed to refresh session after self edit"

	errCtxListingUsers     = "listing users"
	errCtxResolvingActor   = "resolving acting user"
	errCtxFindingTarget    = "finding target user"
	errCtxCheckingEmail    = "checking email uniqueness"
	errCtxEmailInUse       = "email in use"
	errCtxUpdatingUser     = "updating user"
	errCtxDeletingUser     = "deleting user"
	errCtxEditNotPermitted = "edit not permitted"
	errCtxDelNotPermitted  = "delete not permitted"
)

// AccountUseCaseImpl реализует просмотр, редактирование и удаление учетных записей.
type AccountUseCaseImpl struct {
	userRepo  repositories.UserRepository
	sessions  api.SessionUseCase
	validator *validation.Validator
}

// NewAccountUseCase создает сервис управления учетными записями.
func NewAccountUseCase(
	userRepo repositories.UserRepository,
	sessions api.SessionUseCase,
	validator *validation.Validator,
) api.AccountUseCase {
	return &AccountUseCaseImpl{
		userRepo:  userRepo,
		sessions:  sessions,
		validator: validator,
	}
}

// List возвращает все учетные записи без хэшей паролей.
func (a *AccountUseCaseImpl) List(ctx context.Context) ([]*entities.User, error) {
	users, err := a.userRepo.List(ctx)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrListUsers, zap.String("method", methodList), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingUsers, err)
	}
	for _, u := range users {
		u.PasswordHash = ""
	}
	return users, nil
}

// GetEditable возвращает учетную запись, если владелец сессии вправе ее редактировать.
func (a *AccountUseCaseImpl) GetEditable(ctx context.Context, sessionID string, targetID int64) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetEditable), zap.Int64("target_id", targetID))

	actor, err := a.actor(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	target, err := a.target(ctx, log, targetID)
	if err != nil {
		return nil, err
	}

	if !services.CanEdit(actor, target.ID) {
		log.Info(ctx, msgEditDenied, zap.Int64("actor_id", actor.ID))
		return nil, fmt.Errorf("%s: %w", errCtxEditNotPermitted, services.ErrPermissionDenied)
	}

	target.PasswordHash = ""
	return target, nil
}

// Edit меняет имя и email учетной записи. При редактировании собственной
// записи проекция в сессии обновляется.
func (a *AccountUseCaseImpl) Edit(ctx context.Context, sessionID string, targetID int64, in api.EditInput) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodEdit), zap.Int64("target_id", targetID))

	actor, err := a.actor(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	log = log.With(zap.Int64("actor_id", actor.ID))

	res, err := a.validator.Validate(validation.FlowEdit, in.Fields())
	if err != nil {
		log.Error(ctx, msgErrValidateForm, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingForm, err)
	}
	if err := res.Err(); err != nil {
		log.Debug(ctx, msgEditFormRejected, zap.Int("errors", len(res.Errors())))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingForm, err)
	}

	target, err := a.target(ctx, log, targetID)
	if err != nil {
		return nil, err
	}

	if !services.CanEdit(actor, target.ID) {
		log.Info(ctx, msgEditDenied)
		return nil, fmt.Errorf("%s: %w", errCtxEditNotPermitted, services.ErrPermissionDenied)
	}

	email := res.Value(validation.FieldEmail)
	if email != validation.NormalizeEmail(target.Email) {
		taken, err := a.userRepo.ExistsByEmail(ctx, email)
		if err != nil {
			log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxCheckingEmail, err)
		}
		if taken {
			log.Info(ctx, msgEmailTaken)
			return nil, fmt.Errorf("%s: %w", errCtxEmailInUse, services.ErrEmailAlreadyExists)
		}
	}

	updated, err := a.userRepo.Update(ctx, &entities.User{
		ID:    target.ID,
		Name:  res.Value(validation.FieldName),
		Email: email,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailAlreadyExists):
			log.Info(ctx, msgEmailTaken)
			return nil, fmt.Errorf("%s: %w", errCtxEmailInUse, err)
		case errors.Is(err, entities.ErrUserNotFound):
			log.Info(ctx, msgTargetNotFound)
			return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
		default:
			log.Error(ctx, msgErrUpdateUser, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
		}
	}

	if actor.ID == updated.ID {
		if err := a.sessions.Refresh(ctx, sessionID, updated.Identity()); err != nil {
			log.Error(ctx, msgErrRefreshOwnRecord, zap.Error(err))
		}
	}

	log.Info(ctx, msgUserUpdated)
	updated.PasswordHash = ""
	return updated, nil
}

// Delete удаляет чужую учетную запись от имени администратора.
func (a *AccountUseCaseImpl) Delete(ctx context.Context, sessionID string, targetID int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodDelete), zap.Int64("target_id", targetID))

	actor, err := a.actor(ctx, sessionID)
	if err != nil {
		return err
	}
	log = log.With(zap.Int64("actor_id", actor.ID))

	target, err := a.target(ctx, log, targetID)
	if err != nil {
		return err
	}

	if !services.CanDelete(actor, target.ID) {
		log.Info(ctx, msgDeleteDenied)
		return fmt.Errorf("%s: %w", errCtxDelNotPermitted, services.ErrPermissionDenied)
	}

	deleted, err := a.userRepo.Delete(ctx, target.ID)
	if err != nil {
		log.Error(ctx, msgErrDeleteUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingUser, err)
	}
	if !deleted {
		log.Info(ctx, msgTargetNotFound)
		return fmt.Errorf("%s: %w", errCtxDeletingUser, entities.ErrUserNotFound)
	}

	log.Info(ctx, msgUserDeleted)
	return nil
}

func (a *AccountUseCaseImpl) actor(ctx context.Context, sessionID string) (*entities.Identity, error) {
	actor, err := a.sessions.Current(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxResolvingActor, err)
	}
	if actor == nil {
		return nil, fmt.Errorf("%s: %w", errCtxResolvingActor, services.ErrNotAuthenticated)
	}
	return actor, nil
}

func (a *AccountUseCaseImpl) target(ctx context.Context, log *logger.Logger, targetID int64) (*entities.User, error) {
	if targetID <= 0 {
		return nil, fmt.Errorf("%s: %w", errCtxFindingTarget, entities.ErrUserNotFound)
	}

	target, err := a.userRepo.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Info(ctx, msgTargetNotFound)
		} else {
			log.Error(ctx, msgErrFindTarget, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxFindingTarget, err)
	}
	return target, nil
}
