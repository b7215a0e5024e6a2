package controllers

import (
	"net/http"
	"strings"

	"github.com/antojo-app/backend/api/middleware"
	"github.com/antojo-app/backend/api/responses"
	"github.com/antojo-app/backend/api/validators"
	checkoutsvc "github.com/antojo-app/backend/internal/checkout"
	"github.com/antojo-app/backend/pkg/enums"
	pkgerrors "github.com/antojo-app/backend/pkg/errors"
	"github.com/antojo-app/backend/pkg/logger"
)

type checkoutRequest struct {
	DeliveryAddress      string  `json:"deliveryAddress" validate:"required,min=5,max=500"`
	DeliveryInstructions *string `json:"deliveryInstructions,omitempty" validate:"omitempty,max=500"`
	PaymentMethod        string  `json:"paymentMethod" validate:"required"`
}

func (r checkoutRequest) toInput() (checkoutsvc.Input, error) {
	method, err := enums.ParsePaymentMethod(strings.TrimSpace(r.PaymentMethod))
	if err != nil {
		return checkoutsvc.Input{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
	}
	return checkoutsvc.Input{
		DeliveryAddress:      validators.SanitizeString(r.DeliveryAddress, 500),
		DeliveryInstructions: r.DeliveryInstructions,
		PaymentMethod:        method,
	}, nil
}

// Checkout turns the caller's cart into a pending order.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, ok := middleware.UserUUIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Execute(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newOrderResponse(order))
	}
}
