package middleware

import (
	"net/http"

	"github.com/annalofgren/wishvault-backend/api/responses"
	pkgAuth "github.com/annalofgren/wishvault-backend/pkg/auth"
	"github.com/annalofgren/wishvault-backend/pkg/config"
	pkgerrors "github.com/annalofgren/wishvault-backend/pkg/errors"
	"github.com/annalofgren/wishvault-backend/pkg/logger"
)

// Auth requires a valid session cookie and seeds the request context with the
// user id. Anything invalid or expired gets a 401.
func Auth(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := pkgAuth.SessionFromRequest(r, cfg)
			if session == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
				return
			}

			ctx := WithUserID(r.Context(), session.UserID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, session.UserID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth seeds the context with the user id when a valid session cookie
// is present, and lets anonymous requests through untouched.
func OptionalAuth(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := pkgAuth.SessionFromRequest(r, cfg)
			if session == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithUserID(r.Context(), session.UserID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, session.UserID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
