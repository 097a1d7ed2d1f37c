package auth

import (
	"fmt"
	"time"

	"github.com/annalofgren/wishvault-backend/pkg/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// MintSessionToken issues a signed JWT for the provided user using the configured TTL.
func MintSessionToken(cfg config.SessionConfig, now time.Time, userID uuid.UUID) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("session secret is required")
	}
	if cfg.TTL <= 0 {
		return "", fmt.Errorf("session TTL must be positive")
	}
	if userID == uuid.Nil {
		return "", fmt.Errorf("user id is required")
	}

	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// DecryptSessionToken validates the token and returns the session it encodes.
// Any failure yields nil rather than an error so callers can treat the
// request as anonymous. Tampered and expired tokens both fall into that bucket.
func DecryptSessionToken(cfg config.SessionConfig, tokenString string) *Session {
	if cfg.Secret == "" || tokenString == "" {
		return nil
	}

	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil
	}
	if claims.UserID == uuid.Nil || claims.ExpiresAt == nil {
		return nil
	}

	return &Session{
		UserID:    claims.UserID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
}
