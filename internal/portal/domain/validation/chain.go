// Package validation очищает и проверяет поля форм до того,
// как они попадут в бизнес-логику.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Transform преобразует значение поля (обрезка, нормализация).
type Transform func(string) string

// Check проверяет преобразованное значение. form содержит сырые значения всех полей.
type Check func(value string, form map[string]string) bool

type check struct {
	fn      Check
	message string
}

// Chain - декларативное описание правил одного поля.
// Преобразования всегда применяются до проверок, независимо от порядка объявления.
type Chain struct {
	field      string
	transforms []Transform
	checks     []check
}

// Field начинает цепочку правил для поля формы.
func Field(name string) *Chain {
	return &Chain{field: name}
}

// Name возвращает имя поля.
func (c *Chain) Name() string {
	return c.field
}

// Transform добавляет произвольное преобразование.
func (c *Chain) Transform(t Transform) *Chain {
	c.transforms = append(c.transforms, t)
	return c
}

// Trim обрезает пробельные символы по краям.
func (c *Chain) Trim() *Chain {
	return c.Transform(strings.TrimSpace)
}

// NormalizeEmail приводит адрес к нижнему регистру.
func (c *Chain) NormalizeEmail() *Chain {
	return c.Transform(NormalizeEmail)
}

// Must добавляет произвольную проверку с сообщением об ошибке.
func (c *Chain) Must(fn Check, message string) *Chain {
	c.checks = append(c.checks, check{fn: fn, message: message})
	return c
}

// NotEmpty требует непустое значение.
func (c *Chain) NotEmpty(message string) *Chain {
	return c.Must(func(v string, _ map[string]string) bool { return v != "" }, message)
}

// Length ограничивает длину значения в символах.
func (c *Chain) Length(minLen, maxLen int, message string) *Chain {
	return c.Must(func(v string, _ map[string]string) bool {
		n := utf8.RuneCountInString(v)
		return n >= minLen && n <= maxLen
	}, message)
}

// MaxLength ограничивает длину значения сверху.
func (c *Chain) MaxLength(maxLen int, message string) *Chain {
	return c.Length(0, maxLen, message)
}

// Matches требует совпадения с регулярным выражением.
func (c *Chain) Matches(re *regexp.Regexp, message string) *Chain {
	return c.Must(func(v string, _ map[string]string) bool { return re.MatchString(v) }, message)
}

// Email требует синтаксически корректный адрес.
func (c *Chain) Email(message string) *Chain {
	return c.Must(func(v string, _ map[string]string) bool { return isEmail(v) }, message)
}

// EqualsField требует совпадения с сырым значением соседнего поля.
// К значению соседа применяются преобразования текущего поля,
// поэтому результат не зависит от нормализации самого соседа.
func (c *Chain) EqualsField(other, message string) *Chain {
	return c.Must(func(v string, form map[string]string) bool {
		return v == c.apply(form[other])
	}, message)
}

func (c *Chain) apply(raw string) string {
	value := raw
	for _, t := range c.transforms {
		value = t(value)
	}
	return value
}

// NormalizeEmail приводит адрес к каноническому виду. Функция идемпотентна.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var emailValidator = validator.New(validator.WithRequiredStructEnabled())

func isEmail(v string) bool {
	return emailValidator.Var(v, "required,email") == nil
}
