package models

import "fmt"

// Role — уровень доступа пользователя внутри системы.
type Role int

const (
	// RoleMember — сотрудник, видит данные своей компании и редактирует только себя.
	RoleMember Role = 0
	// RoleManager — менеджер компании, полный доступ в пределах своей компании.
	RoleManager Role = 1
	// RoleSuperAdmin — администратор платформы без ограничений по компаниям.
	RoleSuperAdmin Role = 2
)

// Valid сообщает, является ли значение одной из известных ролей.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleManager, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	switch r {
	case RoleMember:
		return "member"
	case RoleManager:
		return "manager"
	case RoleSuperAdmin:
		return "superadmin"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// UserStatus — статус учётной записи пользователя.
type UserStatus int

const (
	// StatusInactive — учётная запись отключена, вход запрещён.
	StatusInactive UserStatus = 0
	// StatusActive — учётная запись активна.
	StatusActive UserStatus = 1
)
