// Package storage содержит общие ошибки слоя хранения.
// Реализация на PostgreSQL находится в пакете repository.
package storage

import "errors"

var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists — нарушено ограничение уникальности.
	ErrAlreadyExists = errors.New("record already exists")
)

// ErrInUse — на запись ссылаются другие записи, удаление невозможно.
var ErrInUse = errors.New("record is referenced")
