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

type productRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=150"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Price       string  `json:"price" validate:"required"`
	Category    string  `json:"category" validate:"required,max=100"`
	ImageURL    *string `json:"imageUrl,omitempty" validate:"omitempty,url"`
	IsAvailable *bool   `json:"isAvailable,omitempty"`
}

func (r productRequest) toInput() (catalog.ProductInput, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return catalog.ProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	return catalog.ProductInput{
		Name:        validators.SanitizeString(r.Name, 150),
		Description: r.Description,
		Price:       price,
		Category:    validators.SanitizeString(r.Category, 100),
		ImageURL:    r.ImageURL,
		IsAvailable: available,
	}, nil
}

// AdminListProducts lists a restaurant's full menu, unavailable items included.
func AdminListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, err := uuid.Parse(chi.URLParam(r, "restaurantId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid restaurant id"))
			return
		}
		rows, err := svc.ListProducts(r.Context(), restaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := make([]productResponse, 0, len(rows))
		for i := range rows {
			out = append(out, newProductResponse(&rows[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

// AdminCreateProduct adds a menu item to a restaurant.
func AdminCreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, err := uuid.Parse(chi.URLParam(r, "restaurantId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid restaurant id"))
			return
		}
		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.CreateProduct(r.Context(), restaurantID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newProductResponse(row))
	}
}

// AdminUpdateProduct replaces the writable product fields.
func AdminUpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}
		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newProductResponse(row))
	}
}

// AdminDeleteProduct removes a product no order references.
func AdminDeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}
		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
