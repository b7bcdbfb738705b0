package models

import "time"

// Client — клиент компании. Email и телефон уникальны среди всех клиентов системы.
type Client struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address,omitempty"`
	City       string    `json:"city,omitempty"`
	State      string    `json:"state,omitempty"`
	PostalCode string    `json:"postal_code,omitempty"`
	Country    string    `json:"country,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewClientInput — данные для создания клиента.
type NewClientInput struct {
	CompanyID  string `json:"company_id" validate:"required"`
	FirstName  string `json:"first_name" validate:"required,min=3,max=50"`
	LastName   string `json:"last_name" validate:"required,min=3,max=50"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,min=5,max=255"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// UpdateClientInput — частичное обновление клиента.
type UpdateClientInput struct {
	CompanyID  *string `json:"company_id,omitempty"`
	FirstName  *string `json:"first_name,omitempty" validate:"omitempty,min=3,max=50"`
	LastName   *string `json:"last_name,omitempty" validate:"omitempty,min=3,max=50"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,min=5,max=255"`
	Address    *string `json:"address,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
	Country    *string `json:"country,omitempty"`
}
