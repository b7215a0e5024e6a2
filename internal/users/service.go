package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/antojo-app/backend/pkg/config"
	"github.com/antojo-app/backend/pkg/db"
	"github.com/antojo-app/backend/pkg/db/models"
	"github.com/antojo-app/backend/pkg/enums"
	pkgerrors "github.com/antojo-app/backend/pkg/errors"
	"github.com/antojo-app/backend/pkg/pagination"
	"github.com/antojo-app/backend/pkg/security"
)

// CreateInput carries the fields for a new account.
type CreateInput struct {
	Email    string
	FullName string
	Phone    *string
	Role     enums.UserRole
	Password string
}

// Page is one cursor-paginated slice of users.
type Page struct {
	Users      []models.User
	NextCursor string
}

// Service exposes the admin user-management surface.
type Service interface {
	List(ctx context.Context, params pagination.Params) (*Page, error)
	Create(ctx context.Context, input CreateInput) (*models.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role enums.UserRole) (*models.User, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo        Repository
	passwordCfg config.PasswordConfig
}

// NewService builds the users service.
func NewService(repo Repository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*Page, error) {
	rows, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(params.Limit)
	page := &Page{Users: rows}
	if len(rows) > limit {
		page.Users = rows[:limit]
		last := page.Users[len(page.Users)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return page, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if strings.TrimSpace(input.FullName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name is required")
	}
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown role %q", input.Role))
	}

	password := input.Password
	if password == "" {
		generated, err := security.GenerateTempPassword(16)
		if err != nil {
			return nil, err
		}
		password = generated
	}
	hash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		FullName:     strings.TrimSpace(input.FullName),
		Phone:        input.Phone,
		Role:         input.Role,
		PasswordHash: hash,
		IsActive:     true,
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err, "ux_users_email") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email is already registered")
		}
		return nil, err
	}
	return created, nil
}

func (s *service) UpdateRole(ctx context.Context, id uuid.UUID, role enums.UserRole) (*models.User, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown role %q", role))
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, err
	}
	user.Role = role
	return s.repo.Update(ctx, user)
}

func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return err
	}
	if !user.IsActive {
		return nil
	}
	user.IsActive = false
	_, err = s.repo.Update(ctx, user)
	return err
}
