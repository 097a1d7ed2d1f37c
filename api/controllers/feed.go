package controllers

import (
	"net/http"

	"github.com/annalofgren/wishvault-backend/api/middleware"
	"github.com/annalofgren/wishvault-backend/api/responses"
	"github.com/annalofgren/wishvault-backend/internal/feed"
	pkgerrors "github.com/annalofgren/wishvault-backend/pkg/errors"
	"github.com/annalofgren/wishvault-backend/pkg/logger"
)

// FeedList returns the newest wishlists from other users.
func FeedList(svc feed.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "feed service unavailable"))
			return
		}

		page, err := svc.List(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}
