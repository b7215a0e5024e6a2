package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/antojo-app/backend/api/responses"
	"github.com/antojo-app/backend/api/validators"
	usersvc "github.com/antojo-app/backend/internal/users"
	"github.com/antojo-app/backend/pkg/enums"
	pkgerrors "github.com/antojo-app/backend/pkg/errors"
	"github.com/antojo-app/backend/pkg/logger"
)

// AdminListUsers pages through every account.
func AdminListUsers(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]userResponse, 0, len(page.Users))
		for i := range page.Users {
			out = append(out, newUserResponse(&page.Users[i]))
		}
		responses.WriteSuccess(w, map[string]any{
			"users":      out,
			"nextCursor": page.NextCursor,
		})
	}
}

type createUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	FullName string  `json:"fullName" validate:"required,min=2,max=150"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Role     string  `json:"role" validate:"required"`
	Password string  `json:"password,omitempty" validate:"omitempty,min=8,max=128"`
}

// AdminCreateUser provisions an account. An omitted password is replaced by a
// generated temporary one.
func AdminCreateUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createUserRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := enums.ParseUserRole(strings.TrimSpace(payload.Role))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role"))
			return
		}

		row, err := svc.Create(r.Context(), usersvc.CreateInput{
			Email:    payload.Email,
			FullName: validators.SanitizeString(payload.FullName, 150),
			Phone:    payload.Phone,
			Role:     role,
			Password: payload.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newUserResponse(row))
	}
}

type updateUserRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// AdminUpdateUserRole flips an account between customer and admin.
func AdminUpdateUserRole(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "userId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		var payload updateUserRoleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := enums.ParseUserRole(strings.TrimSpace(payload.Role))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role"))
			return
		}

		row, err := svc.UpdateRole(r.Context(), id, role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newUserResponse(row))
	}
}

// AdminDeactivateUser soft-disables an account.
func AdminDeactivateUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "userId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		if err := svc.Deactivate(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"deactivated": true})
	}
}
