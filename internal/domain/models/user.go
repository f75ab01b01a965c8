package models

import (
	"time"

	"github.com/fareline/fareline/pkg/uuid"
)

type UserCreateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at,omitzero"`
}

// anonymousUser represents an unauthenticated request.
var anonymousUser = &User{}

func AnonymousUser() *User {
	return anonymousUser
}

func (u *User) IsAnonymous() bool {
	return u == anonymousUser
}
