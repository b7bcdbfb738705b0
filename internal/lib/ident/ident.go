// Package ident приводит идентификаторы к каноническому виду перед сравнением.
package ident

import (
	"strings"

	"github.com/google/uuid"
)

// Canonical возвращает каноническую строковую форму идентификатора.
// UUID в любом допустимом представлении (с фигурными скобками, urn:uuid:, в верхнем
// регистре) приводится к виду 8-4-4-4-12 в нижнем регистре, остальные значения
// только обрезаются и приводятся к нижнему регистру.
func Canonical(id string) string {
	s := strings.TrimSpace(id)
	if u, err := uuid.Parse(s); err == nil {
		return u.String()
	}
	return strings.ToLower(s)
}

// Equal сравнивает два идентификатора в канонической форме. Пустые значения не равны ничему.
func Equal(a, b string) bool {
	ca, cb := Canonical(a), Canonical(b)
	if ca == "" || cb == "" {
		return false
	}
	return ca == cb
}

// New генерирует новый идентификатор.
func New() string {
	return uuid.NewString()
}
