// Package services предоставляет реализации сервисов безопасности портала.
package services

import (
	"campusportal/internal/portal/ports/services"
)

// ServiceFactory создает сервисы, нужные конвейерам аутентификации.
type ServiceFactory struct {
	passwordService services.PasswordService
}

// NewServiceFactory создает новую фабрику сервисов.
func NewServiceFactory(bcryptCost int) *ServiceFactory {
	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost),
	}
}

// PasswordService возвращает сервис для работы с паролями.
func (f *ServiceFactory) PasswordService() services.PasswordService {
	return f.passwordService
}
