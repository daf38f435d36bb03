package validation

import (
	"errors"
	"strings"
)

// ErrInvalidInput - базовая ошибка для формы, не прошедшей проверки.
var ErrInvalidInput = errors.New("validation failed")

// Error несет результат проверки через границы слоев.
type Error struct {
	Result *Result
}

func (e *Error) Error() string {
	return ErrInvalidInput.Error() + ": " + strings.Join(e.Result.Messages(), "; ")
}

// Unwrap позволяет сравнивать ошибку с ErrInvalidInput через errors.Is.
func (e *Error) Unwrap() error {
	return ErrInvalidInput
}

// Err возвращает *Error, если форма не прошла проверки, иначе nil.
func (r *Result) Err() error {
	if r.OK() {
		return nil
	}
	return &Error{Result: r}
}

// Messages извлекает сообщения из ошибки проверки. Для прочих ошибок возвращает nil.
func Messages(err error) []string {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Result.Messages()
	}
	return nil
}
