package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/antojo-app/backend/api/responses"
	"github.com/antojo-app/backend/api/validators"
	"github.com/antojo-app/backend/internal/catalog"
	pkgerrors "github.com/antojo-app/backend/pkg/errors"
	"github.com/antojo-app/backend/pkg/logger"
)

type restaurantRequest struct {
	Name            string   `json:"name" validate:"required,min=2,max=150"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	Address         string   `json:"address" validate:"required,min=5,max=500"`
	Phone           *string  `json:"phone,omitempty" validate:"omitempty,max=30"`
	ImageURL        *string  `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Categories      []string `json:"categories" validate:"required,min=1,dive,required"`
	DeliveryFee     string   `json:"deliveryFee" validate:"required"`
	MinimumOrder    string   `json:"minimumOrder" validate:"required"`
	DeliveryTimeMin int      `json:"deliveryTimeMin" validate:"required,min=1,max=240"`
	IsActive        *bool    `json:"isActive,omitempty"`
}

func (r restaurantRequest) toInput() (catalog.RestaurantInput, error) {
	fee, err := decimal.NewFromString(r.DeliveryFee)
	if err != nil {
		return catalog.RestaurantInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery fee")
	}
	minimum, err := decimal.NewFromString(r.MinimumOrder)
	if err != nil {
		return catalog.RestaurantInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid minimum order")
	}
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return catalog.RestaurantInput{
		Name:            validators.SanitizeString(r.Name, 150),
		Description:     r.Description,
		Address:         validators.SanitizeString(r.Address, 500),
		Phone:           r.Phone,
		ImageURL:        r.ImageURL,
		Categories:      r.Categories,
		DeliveryFee:     fee,
		MinimumOrder:    minimum,
		DeliveryTimeMin: r.DeliveryTimeMin,
		IsActive:        active,
	}, nil
}

// AdminListRestaurants lists every restaurant, active or not.
func AdminListRestaurants(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListAllRestaurants(r.Context())
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

// AdminCreateRestaurant registers a new restaurant.
func AdminCreateRestaurant(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload restaurantRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.CreateRestaurant(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newRestaurantResponse(row, false))
	}
}

// AdminUpdateRestaurant replaces the writable restaurant fields.
func AdminUpdateRestaurant(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "restaurantId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid restaurant id"))
			return
		}
		var payload restaurantRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.UpdateRestaurant(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newRestaurantResponse(row, false))
	}
}

// AdminDeleteRestaurant removes a restaurant that owns no products.
func AdminDeleteRestaurant(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "restaurantId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid restaurant id"))
			return
		}
		if err := svc.DeleteRestaurant(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
