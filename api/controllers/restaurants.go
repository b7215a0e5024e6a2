package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/antojo-app/backend/api/responses"
	"github.com/antojo-app/backend/api/validators"
	"github.com/antojo-app/backend/internal/catalog"
	pkgerrors "github.com/antojo-app/backend/pkg/errors"
	"github.com/antojo-app/backend/pkg/logger"
)

// ListRestaurants serves the public storefront restaurant listing, optionally
// filtered by category.
func ListRestaurants(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		category := validators.SanitizeString(r.URL.Query().Get("category"), 100)

		rows, err := svc.ListRestaurants(r.Context(), category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]restaurantResponse, 0, len(rows))
		for i := range rows {
			out = append(out, newRestaurantResponse(&rows[i], false))
		}
		responses.WriteSuccess(w, out)
	}
}

// GetRestaurant serves a restaurant detail with its available menu.
func GetRestaurant(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "restaurantId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid restaurant id"))
			return
		}

		row, err := svc.GetRestaurant(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newRestaurantResponse(row, true))
	}
}
