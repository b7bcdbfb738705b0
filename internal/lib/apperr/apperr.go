// Package apperr описывает классы доменных ошибок сервиса записи на занятия.
//
// Каждая ошибка несёт вид (Kind) и сообщение для клиента. Вид проверяется через
// errors.Is против экспортированных сентинелов, поэтому ошибки можно оборачивать
// с контекстом операции, не теряя класса.
package apperr

import (
	"errors"
	"net/http"
)

// Kind — класс ошибки.
type Kind string

const (
	KindConfiguration  Kind = "configuration"
	KindAuthentication Kind = "authentication"
	KindForbidden      Kind = "forbidden"
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
)

// Сентинелы для errors.Is.
var (
	ErrConfiguration  = &Error{Kind: KindConfiguration, Message: "configuration error"}
	ErrAuthentication = &Error{Kind: KindAuthentication, Message: "not authenticated"}
	ErrForbidden      = &Error{Kind: KindForbidden, Message: "not authorized"}
	ErrValidation     = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrNotFound       = &Error{Kind: KindNotFound, Message: "not found"}
)

// Error — доменная ошибка с видом и человекочитаемым сообщением.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is сравнивает ошибки по виду, сообщение не учитывается.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Configuration создаёт ошибку конфигурации.
func Configuration(msg string) error { return &Error{Kind: KindConfiguration, Message: msg} }

// Authentication создаёт ошибку аутентификации.
func Authentication(msg string) error { return &Error{Kind: KindAuthentication, Message: msg} }

// Forbidden создаёт ошибку доступа.
func Forbidden(msg string) error { return &Error{Kind: KindForbidden, Message: msg} }

// Validation создаёт ошибку валидации входных данных.
func Validation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }

// NotFound создаёт ошибку отсутствия сущности.
func NotFound(msg string) error { return &Error{Kind: KindNotFound, Message: msg} }

// KindOf возвращает вид доменной ошибки из цепочки или пустую строку.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Message возвращает сообщение доменной ошибки из цепочки.
// Для прочих ошибок возвращается fallback, чтобы не раскрывать детали хранилища.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return fallback
}

// HTTPStatus сопоставляет ошибку HTTP-статусу ответа.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
