package services

import "errors"

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrNotAuthenticated   = errors.New("authentication required")
	ErrPermissionDenied   = errors.New("permission denied")
)

// Сообщения, которые видит пользователь.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgEmailRegistered    = "Email already registered"
	MsgEmailInUse         = "Email already in use"
	MsgLoginRequired      = "Please log in to access this page"
	MsgPermissionDenied   = "You do not have permission to perform this action"
	MsgUserNotFound       = "User not found"
	MsgServiceUnavailable = "Unable to process your request. Please try again later."
	MsgLoggedIn           = "Logged in successfully."
	MsgRegistered         = "Registration successful! Please log in."
	MsgAccountUpdated     = "Account updated successfully."
	MsgAccountDeleted     = "User deleted successfully."
)
