// Package sl содержит маленькие помощники для атрибутов slog, чтобы
// поля логов назывались одинаково во всём приложении.
package sl

import "log/slog"

// Err возвращает атрибут с ключом "error" и текстом ошибки.
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Op возвращает атрибут с ключом "op" — именем операции вида
// "handlers.song.add", по которому группируются записи лога.
func Op(op string) slog.Attr {
	return slog.Attr{
		Key:   "op",
		Value: slog.StringValue(op),
	}
}
