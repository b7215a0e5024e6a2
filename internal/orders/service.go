package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/antojo-app/backend/pkg/db/models"
	"github.com/antojo-app/backend/pkg/enums"
	pkgerrors "github.com/antojo-app/backend/pkg/errors"
	"github.com/antojo-app/backend/pkg/outbox"
	"github.com/antojo-app/backend/pkg/outbox/payloads"
	"github.com/antojo-app/backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Page is one cursor-paginated slice of orders.
type Page struct {
	Orders     []models.Order
	NextCursor string
}

// Actor identifies who is acting on an order.
type Actor struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

// Service exposes order reads and status transitions.
type Service interface {
	ListForUser(ctx context.Context, userID uuid.UUID, status *enums.OrderStatus, params pagination.Params) (*Page, error)
	ListAll(ctx context.Context, status *enums.OrderStatus, params pagination.Params) (*Page, error)
	GetDetail(ctx context.Context, orderID uuid.UUID, actor Actor) (*models.Order, error)
	Cancel(ctx context.Context, orderID uuid.UUID, actor Actor) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus, actor Actor) (*models.Order, error)
}

type service struct {
	tx     txRunner
	repo   Repository
	outbox outboxPublisher
}

// NewService builds the orders service.
func NewService(tx txRunner, repo Repository, publisher outboxPublisher) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{tx: tx, repo: repo, outbox: publisher}, nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, status *enums.OrderStatus, params pagination.Params) (*Page, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return s.list(ctx, ListFilter{UserID: &userID, Status: status}, params)
}

func (s *service) ListAll(ctx context.Context, status *enums.OrderStatus, params pagination.Params) (*Page, error) {
	return s.list(ctx, ListFilter{Status: status}, params)
}

func (s *service) list(ctx context.Context, filter ListFilter, params pagination.Params) (*Page, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", *filter.Status))
	}

	rows, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(params.Limit)
	page := &Page{Orders: rows}
	if len(rows) > limit {
		page.Orders = rows[:limit]
		last := page.Orders[len(page.Orders)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return page, nil
}

func (s *service) GetDetail(ctx context.Context, orderID uuid.UUID, actor Actor) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	order, err := s.repo.FindDetailByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, err
	}
	if actor.Role != enums.UserRoleAdmin && order.UserID != actor.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
	}
	return order, nil
}

// Cancel lets a customer cancel their own order while it is still pending.
func (s *service) Cancel(ctx context.Context, orderID uuid.UUID, actor Actor) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}

	var result *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return err
		}
		if actor.Role != enums.UserRoleAdmin && order.UserID != actor.UserID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
		}
		if order.Status != enums.OrderStatusPending {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("order is %s and can no longer be cancelled", order.Status))
		}

		result, err = s.transition(ctx, tx, repo, order, enums.OrderStatusCancelled, actor)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateStatus applies an admin status transition, appends history, and emits
// the change event in the same transaction.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus, actor Actor) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", status))
	}

	var result *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return err
		}
		if order.Status == status {
			result = order
			return nil
		}
		if order.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("order is already %s", order.Status))
		}

		result, err = s.transition(ctx, tx, repo, order, status, actor)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) transition(ctx context.Context, tx *gorm.DB, repo Repository, order *models.Order, status enums.OrderStatus, actor Actor) (*models.Order, error) {
	previous := order.Status

	if err := repo.UpdateStatus(ctx, order.ID, status); err != nil {
		return nil, err
	}
	if err := repo.CreateStatusHistory(ctx, &models.OrderStatusHistory{
		OrderID: order.ID,
		Status:  status,
	}); err != nil {
		return nil, err
	}

	event := outbox.DomainEvent{
		EventType:     enums.EventOrderStatusChanged,
		AggregateType: enums.AggregateOrder,
		AggregateID:   order.ID,
		Actor:         &outbox.ActorRef{UserID: actor.UserID, Role: string(actor.Role)},
		Data: payloads.OrderStatusChangedEvent{
			OrderID:        order.ID,
			UserID:         order.UserID,
			Status:         status,
			PreviousStatus: previous,
			ChangedAt:      time.Now().UTC(),
		},
		Version: 1,
	}
	if err := s.outbox.Emit(ctx, tx, event); err != nil {
		return nil, err
	}

	order.Status = status
	return order, nil
}
