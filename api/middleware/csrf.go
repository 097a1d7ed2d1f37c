package middleware

import (
	"net/http"

	"github.com/annalofgren/wishvault-backend/api/responses"
	"github.com/annalofgren/wishvault-backend/pkg/auth/csrf"
	"github.com/annalofgren/wishvault-backend/pkg/config"
	pkgerrors "github.com/annalofgren/wishvault-backend/pkg/errors"
	"github.com/annalofgren/wishvault-backend/pkg/logger"
)

// CSRF verifies the double-submit token on mutating requests. The secret
// lives in a Strict cookie; the public token arrives in the X-CSRF-Token
// header. Safe methods pass through.
func CSRF(cfg config.CSRFConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !cfg.Enabled {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			secret := csrf.SecretFromRequest(r, cfg)
			token := r.Header.Get(csrf.HeaderName)
			if !csrf.VerifyToken(secret, token) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "invalid csrf token"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
