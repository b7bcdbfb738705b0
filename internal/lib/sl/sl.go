// Package sl содержит вспомогательные функции для структурированного логирования через slog.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
// Для nil возвращается пустая строка, чтобы вызов в defer-ветках был безопасен.
//
//	log.Error("failed to create lesson", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// Op возвращает логгер с полем op, которым помечаются записи одной операции.
func Op(log *slog.Logger, op string) *slog.Logger {
	return log.With(slog.String("op", op))
}

// Discard возвращает логгер, который ничего не пишет. Используется в тестах.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
