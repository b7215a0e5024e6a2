package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/antojo-app/backend/internal/cart"
	"github.com/antojo-app/backend/internal/orders"
	"github.com/antojo-app/backend/pkg/db/models"
	"github.com/antojo-app/backend/pkg/enums"
	pkgerrors "github.com/antojo-app/backend/pkg/errors"
	"github.com/antojo-app/backend/pkg/logger"
	"github.com/antojo-app/backend/pkg/outbox"
	"github.com/antojo-app/backend/pkg/outbox/payloads"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartEngine interface {
	Get(ctx context.Context, userID uuid.UUID) (*cart.Cart, error)
	Clear(ctx context.Context, userID uuid.UUID) (*cart.Cart, error)
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Input carries the delivery details submitted at checkout.
type Input struct {
	DeliveryAddress      string
	DeliveryInstructions *string
	PaymentMethod        enums.PaymentMethod
}

// Service turns the current cart snapshot into an order.
type Service interface {
	Execute(ctx context.Context, userID uuid.UUID, input Input) (*models.Order, error)
}

type service struct {
	tx     txRunner
	engine cartEngine
	repo   orders.Repository
	outbox outboxPublisher
	logg   *logger.Logger
}

// NewService builds the checkout service.
func NewService(tx txRunner, engine cartEngine, repo orders.Repository, publisher outboxPublisher, logg *logger.Logger) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if engine == nil {
		return nil, fmt.Errorf("cart engine required")
	}
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{tx: tx, engine: engine, repo: repo, outbox: publisher, logg: logg}, nil
}

// Execute recomputes the totals from the stored snapshot, commits the order
// header together with its created event, then writes the line items as a
// second dependent step. The cart is cleared only after both writes succeed.
func (s *service) Execute(ctx context.Context, userID uuid.UUID, input Input) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if strings.TrimSpace(input.DeliveryAddress) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery address is required")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown payment method %q", input.PaymentMethod))
	}

	snapshot, err := s.engine.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if snapshot.IsEmpty() || snapshot.Restaurant == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	totals := cart.ComputeTotals(snapshot.Items, snapshot.DeliveryFee)

	var order *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		created, err := repo.CreateOrder(ctx, &models.Order{
			UserID:               userID,
			RestaurantID:         snapshot.Restaurant.ID,
			Subtotal:             totals.Subtotal,
			DeliveryFee:          totals.DeliveryFee,
			Total:                totals.Total,
			DeliveryAddress:      strings.TrimSpace(input.DeliveryAddress),
			DeliveryInstructions: input.DeliveryInstructions,
			PaymentMethod:        input.PaymentMethod,
			Status:               enums.OrderStatusPending,
		})
		if err != nil {
			return err
		}

		event := outbox.DomainEvent{
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   created.ID,
			Actor:         &outbox.ActorRef{UserID: userID, Role: string(enums.UserRoleCustomer)},
			Data: payloads.OrderCreatedEvent{
				OrderID:      created.ID,
				UserID:       userID,
				RestaurantID: snapshot.Restaurant.ID,
				Status:       created.Status,
				Total:        totals.Total.StringFixed(2),
			},
			Version: 1,
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return err
		}

		order = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Line items are a second write outside the header transaction; a failure
	// here surfaces to the caller and leaves the header without lines.
	items := make([]models.OrderItem, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		productID := item.Product.ID
		items = append(items, models.OrderItem{
			OrderID:   order.ID,
			ProductID: &productID,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price,
			Subtotal:  item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}
	if err := s.repo.CreateOrderItems(ctx, items); err != nil {
		logCtx := s.logg.WithOrderID(ctx, order.ID.String())
		s.logg.Error(logCtx, "order header committed but line items failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing order items")
	}

	if _, err := s.engine.Clear(ctx, userID); err != nil {
		logCtx := s.logg.WithOrderID(ctx, order.ID.String())
		s.logg.Error(logCtx, "order placed but cart was not cleared", err)
	}

	order.Items = items
	return order, nil
}
