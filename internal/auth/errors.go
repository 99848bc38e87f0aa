package auth

import "errors"

var (
	// ErrUserAccountDisabled is returned when attempting to authenticate a disabled user account.
	ErrUserAccountDisabled = errors.New("user account is disabled")

	// ErrInvalidCredentials is returned when the provided username and/or password are incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
