package validation

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrUnknownFlow возвращается для формы без объявленных правил.
var ErrUnknownFlow = errors.New("unknown validation flow")

// Flow - имя формы с собственным набором правил.
type Flow string

// Формы портала.
const (
	FlowLogin        Flow = "login"
	FlowRegistration Flow = "registration"
	FlowEdit         Flow = "edit"
)

// Имена полей форм.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldEmailConfirm    = "emailConfirm"
	FieldPassword        = "password"
	FieldPasswordConfirm = "passwordConfirm"
)

// Ограничения и сообщения.
const (
	MaxEmailLength    = 255
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MinNameLength     = 2
	MaxNameLength     = 100

	MsgEmailInvalidLogin = "Please provide a valid email address"
	MsgEmailInvalid      = "Must be a valid email address"
	MsgEmailTooLong      = "Email address is too long"
	MsgEmailMismatch     = "Email addresses must match"
	MsgPasswordRequired  = "Password is required"
	MsgPasswordLength    = "Password must be between 8 and 128 characters"
	MsgPasswordDigit     = "Password must contain at least one number"
	MsgPasswordLower     = "Password must contain at least lowercase letter"
	MsgPasswordUpper     = "Password must contain at least uppercase letter"
	MsgPasswordSymbol    = "Password must contain at least one special character"
	MsgPasswordMismatch  = "Passwords must match"
	MsgNameLength        = "Name must be between 2 and 100 characters"
	MsgNameCharacters    = "Name can only contain letters, spaces, hyphens, and apostrophes"
)

var (
	reDigit  = regexp.MustCompile(`[0-9]`)
	reLower  = regexp.MustCompile(`[a-z]`)
	reUpper  = regexp.MustCompile(`[A-Z]`)
	reSymbol = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]`)
	reName   = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
)

func nameChain() *Chain {
	return Field(FieldName).
		Trim().
		Length(MinNameLength, MaxNameLength, MsgNameLength).
		Matches(reName, MsgNameCharacters)
}

func emailChain(invalidMsg string) *Chain {
	return Field(FieldEmail).
		Trim().
		Email(invalidMsg).
		NormalizeEmail().
		MaxLength(MaxEmailLength, MsgEmailTooLong)
}

func flows() map[Flow][]*Chain {
	return map[Flow][]*Chain{
		FlowLogin: {
			emailChain(MsgEmailInvalidLogin),
			Field(FieldPassword).
				NotEmpty(MsgPasswordRequired).
				Length(MinPasswordLength, MaxPasswordLength, MsgPasswordLength),
		},
		FlowRegistration: {
			nameChain(),
			emailChain(MsgEmailInvalid),
			Field(FieldEmailConfirm).
				Trim().
				EqualsField(FieldEmail, MsgEmailMismatch),
			Field(FieldPassword).
				Length(MinPasswordLength, MaxPasswordLength, MsgPasswordLength).
				Matches(reDigit, MsgPasswordDigit).
				Matches(reLower, MsgPasswordLower).
				Matches(reUpper, MsgPasswordUpper).
				Matches(reSymbol, MsgPasswordSymbol),
			Field(FieldPasswordConfirm).
				EqualsField(FieldPassword, MsgPasswordMismatch),
		},
		FlowEdit: {
			nameChain(),
			emailChain(MsgEmailInvalid),
		},
	}
}

// Validator хранит наборы правил всех форм.
type Validator struct {
	flows map[Flow][]*Chain
}

// New создает валидатор с правилами форм портала.
func New() *Validator {
	return &Validator{flows: flows()}
}

// Validate проверяет сырые значения формы. Сначала преобразуются все поля,
// затем выполняются проверки; ошибки накапливаются по всем полям.
func (v *Validator) Validate(flow Flow, form map[string]string) (*Result, error) {
	chains, ok := v.flows[flow]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFlow, flow)
	}

	fields := make([]*field, 0, len(chains))
	for _, c := range chains {
		fields = append(fields, newField(c, form[c.Name()]))
	}

	for _, f := range fields {
		f.transform()
	}

	result := &Result{values: make(map[string]string, len(fields))}
	for _, f := range fields {
		f.validate(form)
		result.values[f.chain.Name()] = f.value
		for _, msg := range f.errors {
			result.errors = append(result.errors, FieldError{Field: f.chain.Name(), Message: msg})
		}
	}

	return result, nil
}
