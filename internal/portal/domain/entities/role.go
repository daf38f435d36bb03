// Package entities содержит сущности домена портала.
package entities

import "encoding/json"

// Role - закрытое перечисление ролей учетной записи.
type Role uint8

// Роли. Нулевое значение - обычный пользователь.
const (
	RoleUser Role = iota
	RoleAdmin
)

const (
	roleNameUser  = "user"
	roleNameAdmin = "admin"
)

// ParseRole разбирает имя роли из хранилища. Привилегии дает только точное
// совпадение с "admin", все прочие значения трактуются как обычный пользователь.
func ParseRole(name string) Role {
	if name == roleNameAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// String возвращает имя роли в том виде, в каком она хранится в базе.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return roleNameAdmin
	default:
		return roleNameUser
	}
}

// MarshalJSON кодирует роль строкой.
func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON декодирует роль из строки, неизвестные значения дают RoleUser.
func (r *Role) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		*r = RoleUser
		return nil //nolint:nilerr // нераспознанная роль не дает привилегий
	}
	*r = ParseRole(name)
	return nil
}
