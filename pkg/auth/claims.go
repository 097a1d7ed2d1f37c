package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims is the typed JWT carried by the session cookie.
type SessionClaims struct {
	UserID uuid.UUID `json:"userId"`
	jwt.RegisteredClaims
}

// Session is the decoded, validated session payload.
type Session struct {
	UserID    uuid.UUID
	ExpiresAt time.Time
}
