package csrf

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/annalofgren/wishvault-backend/pkg/config"
)

// HeaderName is the request header clients echo the public token through.
const HeaderName = "X-CSRF-Token"

// GenerateSecret returns a fresh random secret for the csrf cookie.
func GenerateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate csrf secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// CreateToken derives the public token for a secret. The token is
// "salt.mac" where mac is HMAC-SHA256 over the salt keyed by the secret,
// so the server can verify it without storing anything.
func CreateToken(secret string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate csrf salt: %w", err)
	}
	saltHex := hex.EncodeToString(salt)
	return saltHex + "." + sign(secret, saltHex), nil
}

// VerifyToken reports whether the public token was derived from the secret.
func VerifyToken(secret, token string) bool {
	if secret == "" || token == "" {
		return false
	}
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	expected := sign(secret, parts[0])
	return hmac.Equal([]byte(expected), []byte(parts[1]))
}

func sign(secret, salt string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(salt))
	return hex.EncodeToString(mac.Sum(nil))
}

// SetSecretCookie stores the csrf secret on the client.
func SetSecretCookie(w http.ResponseWriter, cfg config.CSRFConfig, secret string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    secret,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

// SecretFromRequest reads the csrf secret cookie, if present.
func SecretFromRequest(r *http.Request, cfg config.CSRFConfig) string {
	cookie, err := r.Cookie(cfg.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
