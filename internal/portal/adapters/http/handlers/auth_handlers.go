package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"campusportal/internal/portal/adapters/http/middleware"
	"campusportal/internal/portal/domain/entities"
	"campusportal/internal/portal/domain/services"
	"campusportal/internal/portal/domain/validation"
	"campusportal/internal/portal/ports/api"
	"campusportal/pkg/logger"
)

const (
	LogHandlerRegister = "auth handler: register"
	LogHandlerLogin    = "auth handler: login"
	LogHandlerLogout   = "auth handler: logout"

	LogRotateFailed  = "failed to issue session after login"
	LogDestroyFailed = "failed to destroy session on logout"
)

// Register обрабатывает форму регистрации.
func (h *Handler) Register(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	_, err := h.auth.Register(requestCtx, api.RegisterInput{
		Name:            c.FormValue(validation.FieldName),
		Email:           c.FormValue(validation.FieldEmail),
		EmailConfirm:    c.FormValue(validation.FieldEmailConfirm),
		Password:        c.FormValue(validation.FieldPassword),
		PasswordConfirm: c.FormValue(validation.FieldPasswordConfirm),
	})

	switch {
	case err == nil:
		h.flash(c, entities.FeedbackSuccess, services.MsgRegistered)
		return redirect(c, PathLogin)
	case errors.Is(err, validation.ErrInvalidInput):
		h.flash(c, entities.FeedbackError, validation.Messages(err)...)
	case errors.Is(err, services.ErrEmailAlreadyExists):
		h.flash(c, entities.FeedbackWarning, services.MsgEmailRegistered)
	default:
		log.Error(requestCtx, LogRequestFailed, zap.Error(err))
		h.flash(c, entities.FeedbackError, services.MsgServiceUnavailable)
	}
	return redirect(c, PathRegister)
}

// Login проверяет учетные данные и выдает новую сессию.
func (h *Handler) Login(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	identity, err := h.auth.Login(requestCtx, api.LoginInput{
		Email:    c.FormValue(validation.FieldEmail),
		Password: c.FormValue(validation.FieldPassword),
	})
	if err != nil {
		switch {
		case errors.Is(err, validation.ErrInvalidInput):
			h.flash(c, entities.FeedbackError, validation.Messages(err)...)
		case errors.Is(err, services.ErrInvalidCredentials):
			h.flash(c, entities.FeedbackError, services.MsgInvalidCredentials)
		default:
			log.Error(requestCtx, LogRequestFailed, zap.Error(err))
			h.flash(c, entities.FeedbackError, services.MsgServiceUnavailable)
		}
		return redirect(c, PathLogin)
	}

	sessionID, err := h.sessions.Rotate(requestCtx, middleware.SessionID(c), identity)
	if err != nil {
		log.Error(requestCtx, LogRotateFailed, zap.Error(err))
		h.flash(c, entities.FeedbackError, services.MsgServiceUnavailable)
		return redirect(c, PathLogin)
	}

	h.cookie.Set(c, sessionID)
	middleware.SetSessionID(c, sessionID)
	h.flash(c, entities.FeedbackSuccess, services.MsgLoggedIn)
	return redirect(c, PathDashboard)
}

// Logout уничтожает сессию. Cookie удаляется, даже если хранилище недоступно.
func (h *Handler) Logout(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogout)

	if err := h.sessions.Destroy(requestCtx, middleware.SessionID(c)); err != nil {
		log.Warn(requestCtx, LogDestroyFailed, zap.Error(err))
	}

	h.cookie.Clear(c)
	return redirect(c, PathHome)
}
