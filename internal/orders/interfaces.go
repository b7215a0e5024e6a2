package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/antojo-app/backend/pkg/db/models"
	"github.com/antojo-app/backend/pkg/enums"
	"github.com/antojo-app/backend/pkg/pagination"
)

// Repository persists order headers, lines, and status history.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	CreateStatusHistory(ctx context.Context, row *models.OrderStatusHistory) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindDetailByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
}

// ListFilter narrows order listings.
type ListFilter struct {
	UserID *uuid.UUID
	Status *enums.OrderStatus
}
