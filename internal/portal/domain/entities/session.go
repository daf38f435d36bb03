package entities

import "errors"

// Ошибки сессии.
var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrEmptySessionID    = errors.New("session id cannot be empty")
	ErrSessionSecretLeak = errors.New("session record contained a password field")
)
