// Package apperr определяет классификацию ошибок уровня приложения.
//
// Каждая ошибка несёт Kind, по которому HTTP-слой выбирает статус ответа.
// Оборачивание через fmt.Errorf("%s: %w", op, err) сохраняет Kind.
package apperr

import (
	"errors"
	"fmt"
)

// Kind задаёт класс ошибки приложения.
type Kind int

const (
	// Internal — сбой хранилища или инфраструктуры.
	Internal Kind = iota
	// InvalidInput — некорректные данные от вызывающей стороны.
	InvalidInput
	// Unauthenticated — отсутствующий, просроченный или повреждённый токен.
	Unauthenticated
	// Forbidden — валидная личность, но недостаточно прав или бан.
	Forbidden
	// Conflict — нарушение уникальности.
	Conflict
	// NotFound — запрошенная сущность отсутствует.
	NotFound
)

// Error — ошибка приложения с классом и сообщением для клиента.
type Error struct {
	Kind Kind
	Msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.err }

// New создает ошибку заданного класса с сообщением для клиента.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf создает ошибку заданного класса с форматированным сообщением.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap оборачивает причину, сохраняя её в цепочке для errors.Is/As.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, err: err}
}

// KindOf возвращает класс ошибки из цепочки. Неклассифицированные
// ошибки считаются Internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// Message возвращает сообщение для клиента. Для неклассифицированных
// ошибок возвращается общий текст, чтобы не раскрывать внутренние детали.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Msg
	}
	return "database failed to execute query"
}
