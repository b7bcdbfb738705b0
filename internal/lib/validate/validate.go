// Package validate проверяет входные структуры по тегам validate и переводит
// нарушения в человекочитаемую ошибку валидации.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/apperr"
)

var v = validator.New()

// Struct проверяет s и возвращает apperr с видом Validation при нарушениях.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return apperr.Validation(err.Error())
	}
	return apperr.Validation(Message(errs))
}

// Message формирует текст из нарушений, объединённых через запятую.
func Message(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", field))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid email", field))
		case "min":
			msgs = append(msgs, fmt.Sprintf("field %s must be at least %s", field, err.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("field %s must be at most %s", field, err.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("field %s must be one of [%s]", field, err.Param()))
		case "url":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid url", field))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", field))
		}
	}
	return strings.Join(msgs, ", ")
}
