package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"campusportal/internal/portal/adapters/http/middleware"
	"campusportal/internal/portal/adapters/http/views"
	"campusportal/internal/portal/domain/entities"
	"campusportal/internal/portal/domain/services"
	"campusportal/pkg/logger"
)

const (
	LogListUsersFailed  = "failed to list users"
	LogIdentityExposure = "identity projection carries a password field, refusing to render"
	LogPanicRecovered   = "rendering error page after panic"

	msgPageNotFound = "The page you are looking for does not exist."
	msgServerError  = "Something went wrong on our side."
)

// Home показывает главную страницу.
func (h *Handler) Home(c fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, views.PageHome, h.newPage(c, "Campus Portal"))
}

// LoginForm показывает форму входа.
func (h *Handler) LoginForm(c fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, views.PageLogin, h.newPage(c, "Log In"))
}

// RegisterForm показывает форму регистрации.
func (h *Handler) RegisterForm(c fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, views.PageRegister, h.newPage(c, "Register"))
}

// Users показывает список зарегистрированных пользователей.
func (h *Handler) Users(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	page := h.newPage(c, "Registered Users")

	users, err := h.accounts.List(requestCtx)
	if err != nil {
		logger.Log(requestCtx).Error(requestCtx, LogListUsersFailed, zap.Error(err))
		page.Feedback = append(page.Feedback, entities.FeedbackMessage{
			Category: entities.FeedbackError,
			Text:     services.MsgServiceUnavailable,
		})
		return h.render(c, fiber.StatusServiceUnavailable, views.PageUsers, page)
	}

	actor := middleware.Identity(c)
	page.Users = make([]views.UserView, 0, len(users))
	for _, u := range users {
		page.Users = append(page.Users, newUserView(u, actor))
	}
	return h.render(c, fiber.StatusOK, views.PageUsers, page)
}

// Dashboard показывает владельца сессии.
func (h *Handler) Dashboard(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	page := h.newPage(c, "Dashboard")

	if exposesPassword(page.Identity) {
		logger.Log(requestCtx).Error(requestCtx, LogIdentityExposure)
		page.Identity = nil
		page.Message = msgServerError
		return h.render(c, fiber.StatusInternalServerError, views.PageError, page)
	}
	return h.render(c, fiber.StatusOK, views.PageDashboard, page)
}

// NotFound отвечает на неизвестные маршруты.
func (h *Handler) NotFound(c fiber.Ctx) error {
	page := &views.Page{Title: "Page Not Found", Identity: middleware.Identity(c), Message: msgPageNotFound}
	return h.render(c, fiber.StatusNotFound, views.PageError, page)
}

// ServerError отвечает после перехваченной паники без внутренних подробностей.
func (h *Handler) ServerError(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogPanicRecovered)

	page := &views.Page{Title: "Server Error", Message: msgServerError}
	return h.render(c, fiber.StatusInternalServerError, views.PageError, page)
}

func newUserView(u *entities.User, actor *entities.Identity) views.UserView {
	view := views.NewUserView(u)
	view.CanEdit = services.CanEdit(actor, u.ID)
	view.CanDelete = services.CanDelete(actor, u.ID)
	return view
}

// exposesPassword проверяет сериализованную проекцию на поля с паролем.
func exposesPassword(identity *entities.Identity) bool {
	if identity == nil {
		return false
	}

	raw, err := json.Marshal(identity)
	if err != nil {
		return true
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return true
	}
	for key := range fields {
		if strings.Contains(strings.ToLower(key), "password") || strings.EqualFold(key, "hash") {
			return true
		}
	}
	return false
}
