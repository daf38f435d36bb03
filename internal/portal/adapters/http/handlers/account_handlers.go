package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"campusportal/internal/portal/adapters/http/middleware"
	"campusportal/internal/portal/adapters/http/views"
	"campusportal/internal/portal/domain/entities"
	"campusportal/internal/portal/domain/services"
	"campusportal/internal/portal/domain/validation"
	"campusportal/internal/portal/ports/api"
	"campusportal/pkg/logger"
)

const (
	LogHandlerEditForm = "account handler: edit form"
	LogHandlerEdit     = "account handler: edit"
	LogHandlerDelete   = "account handler: delete"
)

// EditForm показывает форму редактирования учетной записи.
func (h *Handler) EditForm(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerEditForm)

	targetID, ok := userIDParam(c)
	if !ok {
		h.flash(c, entities.FeedbackError, services.MsgUserNotFound)
		return redirect(c, PathUsers)
	}

	user, err := h.accounts.GetEditable(requestCtx, middleware.SessionID(c), targetID)
	if err != nil {
		return redirect(c, h.accountFailure(c, err, PathUsers))
	}

	view := newUserView(user, middleware.Identity(c))
	page := h.newPage(c, "Edit Account")
	page.User = &view
	return h.render(c, fiber.StatusOK, views.PageEdit, page)
}

// Edit сохраняет изменения учетной записи.
func (h *Handler) Edit(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerEdit)

	targetID, ok := userIDParam(c)
	if !ok {
		h.flash(c, entities.FeedbackError, services.MsgUserNotFound)
		return redirect(c, PathUsers)
	}

	_, err := h.accounts.Edit(requestCtx, middleware.SessionID(c), targetID, api.EditInput{
		Name:  c.FormValue(validation.FieldName),
		Email: c.FormValue(validation.FieldEmail),
	})
	if err != nil {
		return redirect(c, h.accountFailure(c, err, editPath(targetID)))
	}

	h.flash(c, entities.FeedbackSuccess, services.MsgAccountUpdated)
	return redirect(c, PathUsers)
}

// Delete удаляет учетную запись.
func (h *Handler) Delete(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerDelete)

	targetID, ok := userIDParam(c)
	if !ok {
		h.flash(c, entities.FeedbackError, services.MsgUserNotFound)
		return redirect(c, PathUsers)
	}

	if err := h.accounts.Delete(requestCtx, middleware.SessionID(c), targetID); err != nil {
		return redirect(c, h.accountFailure(c, err, PathUsers))
	}

	h.flash(c, entities.FeedbackSuccess, services.MsgAccountDeleted)
	return redirect(c, PathUsers)
}

// accountFailure сообщает пользователю о причине отказа и возвращает путь
// для перенаправления. Ошибки проверки формы ведут на formPath.
func (h *Handler) accountFailure(c fiber.Ctx, err error, formPath string) string {
	switch {
	case errors.Is(err, validation.ErrInvalidInput):
		h.flash(c, entities.FeedbackError, validation.Messages(err)...)
		return formPath
	case errors.Is(err, services.ErrNotAuthenticated):
		h.flash(c, entities.FeedbackError, services.MsgLoginRequired)
		return PathLogin
	case errors.Is(err, services.ErrEmailAlreadyExists):
		h.flash(c, entities.FeedbackError, services.MsgEmailInUse)
	case errors.Is(err, entities.ErrUserNotFound):
		h.flash(c, entities.FeedbackError, services.MsgUserNotFound)
	case errors.Is(err, services.ErrPermissionDenied):
		h.flash(c, entities.FeedbackError, services.MsgPermissionDenied)
	default:
		requestCtx := middleware.RequestContext(c)
		logger.Log(requestCtx).Error(requestCtx, LogRequestFailed, zap.Error(err))
		h.flash(c, entities.FeedbackError, services.MsgServiceUnavailable)
	}
	return PathUsers
}

// userIDParam разбирает :id. Нечисловой или неположительный id не найден.
func userIDParam(c fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func editPath(id int64) string {
	return "/users/" + strconv.FormatInt(id, 10) + "/edit"
}
