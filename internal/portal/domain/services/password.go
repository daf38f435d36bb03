package services

import "errors"

// PasswordErrors содержит ошибки, связанные с паролями.
var (
	ErrHashingFailed   = errors.New("failed to hash password")
	ErrInvalidPassword = errors.New("invalid password")
)

// MaxBcryptInputBytes - предел длины входа bcrypt, остаток отбрасывается.
const MaxBcryptInputBytes = 72
