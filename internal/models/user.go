package models

import "time"

// User — сотрудник компании, который входит в систему и ведёт занятия.
type User struct {
	ID           string     `json:"id"`
	CompanyID    string     `json:"company_id,omitempty"` // пусто только при начальной настройке
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Status       UserStatus `json:"status"`
	RegisteredAt time.Time  `json:"registered_at"`
	LastAccessAt *time.Time `json:"last_access_at,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Actor возвращает идентичность пользователя в виде, пригодном для проверки прав.
func (u *User) Actor() *Actor {
	return &Actor{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CompanyID: u.CompanyID,
	}
}

// NewUserInput — данные для создания пользователя.
type NewUserInput struct {
	FirstName string      `json:"first_name" validate:"required,min=2,max=50"`
	LastName  string      `json:"last_name" validate:"required,min=2,max=50"`
	Email     string      `json:"email" validate:"required,email"`
	Password  string      `json:"password" validate:"required,min=6"`
	CompanyID string      `json:"company_id" validate:"required"`
	Role      *Role       `json:"role,omitempty" validate:"omitempty,min=0,max=2"`
	Status    *UserStatus `json:"status,omitempty" validate:"omitempty,min=0,max=1"`
}

// UpdateUserInput — частичное обновление пользователя, nil означает «не менять».
type UpdateUserInput struct {
	FirstName *string     `json:"first_name,omitempty" validate:"omitempty,min=2,max=50"`
	LastName  *string     `json:"last_name,omitempty" validate:"omitempty,min=2,max=50"`
	Email     *string     `json:"email,omitempty" validate:"omitempty,email"`
	Password  *string     `json:"password,omitempty" validate:"omitempty,min=6"`
	CompanyID *string     `json:"company_id,omitempty"`
	Role      *Role       `json:"role,omitempty" validate:"omitempty,min=0,max=2"`
	Status    *UserStatus `json:"status,omitempty" validate:"omitempty,min=0,max=1"`
}

// RegisterInput — самостоятельная регистрация компании и её первого менеджера.
type RegisterInput struct {
	CompanyName string `json:"company_name" validate:"required,min=2,max=100"`
	FirstName   string `json:"first_name" validate:"required,min=2,max=50"`
	LastName    string `json:"last_name" validate:"required,min=2,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
}
