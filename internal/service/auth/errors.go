package auth

import "errors"

var (
	ErrTokenGenerateFail = errors.New("failed to generate token")
	ErrUnexpected        = errors.New("unexpected error")
	ErrInvalidToken      = errors.New("invalid token")
	ErrExpToken          = errors.New("expired token")
)
