package validation

// FieldError - сообщение об ошибке, привязанное к полю.
type FieldError struct {
	Field   string
	Message string
}

// Result - итог проверки формы.
type Result struct {
	values map[string]string
	errors []FieldError
}

// OK сообщает, прошла ли форма все проверки.
func (r *Result) OK() bool {
	return len(r.errors) == 0
}

// Errors возвращает ошибки в порядке объявления полей и правил.
func (r *Result) Errors() []FieldError {
	return r.errors
}

// Messages возвращает только тексты ошибок.
func (r *Result) Messages() []string {
	msgs := make([]string, 0, len(r.errors))
	for _, e := range r.errors {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

// Value возвращает преобразованное значение поля.
func (r *Result) Value(name string) string {
	return r.values[name]
}
