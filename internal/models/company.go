// Package models содержит доменные структуры системы записи на занятия:
// компании (арендаторы), пользователи, клиенты и занятия.
package models

// Company — арендатор системы. Название уникально без учёта регистра.
type Company struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Address      string `json:"address,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
	LogoURL      string `json:"logo_url,omitempty"`
	Timezone     string `json:"timezone,omitempty"`
}

// CompanyInput используется для приёма данных компании из JSON-запроса.
type CompanyInput struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Description  string `json:"description,omitempty"`
	Address      string `json:"address,omitempty"`
	ContactEmail string `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone string `json:"contact_phone,omitempty"`
	LogoURL      string `json:"logo_url,omitempty" validate:"omitempty,url"`
	Timezone     string `json:"timezone,omitempty"`
}
