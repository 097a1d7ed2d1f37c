package controllers

import (
	"net/http"
	"time"

	"github.com/annalofgren/wishvault-backend/api/responses"
	"github.com/annalofgren/wishvault-backend/api/validators"
	"github.com/annalofgren/wishvault-backend/internal/auth"
	pkgAuth "github.com/annalofgren/wishvault-backend/pkg/auth"
	"github.com/annalofgren/wishvault-backend/pkg/auth/csrf"
	"github.com/annalofgren/wishvault-backend/pkg/config"
	pkgerrors "github.com/annalofgren/wishvault-backend/pkg/errors"
	"github.com/annalofgren/wishvault-backend/pkg/logger"
)

// AuthLogin wires the login endpoint into the HTTP layer. The session token
// rides in an httpOnly cookie, never in the response body.
func AuthLogin(svc auth.Service, sessionCfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pkgAuth.SetSessionCookie(w, sessionCfg, result.Token, time.Now())
		responses.WriteSuccess(w, result.User)
	}
}

// AuthRegister creates an account and signs the new user in.
func AuthRegister(svc auth.RegisterService, sessionCfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "register service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pkgAuth.SetSessionCookie(w, sessionCfg, result.Token, time.Now())
		responses.WriteSuccessStatus(w, http.StatusCreated, result.User)
	}
}

// AuthLogout expires the session cookie. Sessions are stateless, so there is
// nothing to revoke server-side.
func AuthLogout(sessionCfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pkgAuth.ClearSessionCookie(w, sessionCfg)
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// AuthCSRF hands the client a csrf secret cookie and the derived public token.
func AuthCSRF(csrfCfg config.CSRFConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		secret := csrf.SecretFromRequest(r, csrfCfg)
		if secret == "" {
			fresh, err := csrf.GenerateSecret()
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate csrf secret"))
				return
			}
			secret = fresh
			csrf.SetSecretCookie(w, csrfCfg, secret)
		}

		token, err := csrf.CreateToken(secret)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create csrf token"))
			return
		}

		responses.WriteSuccess(w, auth.CSRFResponse{Token: token})
	}
}
