package models

// Actor — аутентифицированная личность, от имени которой выполняется запрос.
// Восстанавливается из access-токена.
type Actor struct {
	ID        string
	Email     string
	Role      Role
	CompanyID string
}
