package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fareline/fareline/pkg/uuid"
)

const (
	AccessToken  = "access"
	RefreshToken = "refresh"
)

func IsValidTokenType(typ string) bool {
	return typ == AccessToken || typ == RefreshToken
}

type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

type CustomClaims struct {
	UserID    uuid.UUID
	TokenID   uuid.UUID
	TokenType string
	Email     string
	jwt.RegisteredClaims
}

// RefreshTokenRecord is the persisted server-side state of a refresh
// token; only the SHA-256 hash of the token is stored.
type RefreshTokenRecord struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}
