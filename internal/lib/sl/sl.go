// Package sl дополняет slog атрибутами, общими для всех слоёв приложения.
//
// Ошибки логируются единообразно под ключом "error", чтобы по нему можно
// было фильтровать записи при разборе инцидентов:
//
//	log.Error("failed to resolve session", sl.Err(err))
package sl

import "log/slog"

// Err оборачивает текст ошибки в slog.Attr с ключом "error".
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
