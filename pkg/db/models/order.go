package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/antojo-app/backend/pkg/enums"
)

// Order is the order header persisted at checkout.
type Order struct {
	ID                   uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID               uuid.UUID            `gorm:"column:user_id;type:uuid;not null"`
	RestaurantID         uuid.UUID            `gorm:"column:restaurant_id;type:uuid;not null"`
	Subtotal             decimal.Decimal      `gorm:"column:subtotal;type:numeric(10,2);not null"`
	DeliveryFee          decimal.Decimal      `gorm:"column:delivery_fee;type:numeric(10,2);not null"`
	Total                decimal.Decimal      `gorm:"column:total;type:numeric(10,2);not null"`
	DeliveryAddress      string               `gorm:"column:delivery_address;not null"`
	DeliveryInstructions *string              `gorm:"column:delivery_instructions"`
	PaymentMethod        enums.PaymentMethod  `gorm:"column:payment_method;type:text;not null"`
	Status               enums.OrderStatus    `gorm:"column:status;type:text;not null;default:'pending'"`
	Restaurant           *Restaurant          `gorm:"foreignKey:RestaurantID"`
	Items                []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	StatusHistory        []OrderStatusHistory `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt            time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
