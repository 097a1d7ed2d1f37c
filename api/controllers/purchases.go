package controllers

import (
	"net/http"
	"strings"

	"github.com/annalofgren/wishvault-backend/api/middleware"
	"github.com/annalofgren/wishvault-backend/api/responses"
	"github.com/annalofgren/wishvault-backend/api/validators"
	"github.com/annalofgren/wishvault-backend/internal/items"
	pkgerrors "github.com/annalofgren/wishvault-backend/pkg/errors"
	"github.com/annalofgren/wishvault-backend/pkg/logger"
	"github.com/annalofgren/wishvault-backend/pkg/pagination"
)

// PurchaseList returns the items the caller has bought, newest first.
func PurchaseList(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cursor := strings.TrimSpace(r.URL.Query().Get("cursor"))

		page, err := svc.ListPurchases(r.Context(), middleware.UserIDFromContext(r.Context()), cursor, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}
