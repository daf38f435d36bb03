// Package services содержит доменные правила портала, не зависящие от хранилищ.
package services

import "campusportal/internal/portal/domain/entities"

// CanEdit разрешает редактирование своей учетной записи или любой - администратору.
func CanEdit(actor *entities.Identity, targetID int64) bool {
	if actor == nil {
		return false
	}
	return actor.ID == targetID || actor.Role == entities.RoleAdmin
}

// CanDelete разрешает удаление только администратору и только чужой учетной записи.
func CanDelete(actor *entities.Identity, targetID int64) bool {
	if actor == nil {
		return false
	}
	return actor.Role == entities.RoleAdmin && actor.ID != targetID
}
