package types

import "errors"

var (
	// ErrInvalidRequest marks user-correctable input problems; its message
	// is safe to surface verbatim.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// deliberately indistinguishable to avoid account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrDuplicateUser = errors.New("user with this email already exists")
	ErrUserNotFound  = errors.New("user not found")

	// ErrProvidersUnavailable is returned only when every registered quote
	// source failed within one aggregation window.
	ErrProvidersUnavailable = errors.New("no ride providers are available right now")

	ErrNotFound = errors.New("requested item not found")
)
