package auth

import (
	"net/http"
	"time"

	"github.com/annalofgren/wishvault-backend/pkg/config"
)

// SetSessionCookie writes the signed session token to the response.
func SetSessionCookie(w http.ResponseWriter, cfg config.SessionConfig, token string, now time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  now.Add(cfg.TTL),
		MaxAge:   int(cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(w http.ResponseWriter, cfg config.SessionConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionFromRequest decodes the session cookie on the request, if any.
func SessionFromRequest(r *http.Request, cfg config.SessionConfig) *Session {
	cookie, err := r.Cookie(cfg.CookieName)
	if err != nil {
		return nil
	}
	return DecryptSessionToken(cfg, cookie.Value)
}
