package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Restaurant represents a merchant customers can order from.
type Restaurant struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string          `gorm:"column:name;not null"`
	Description     *string         `gorm:"column:description"`
	Address         string          `gorm:"column:address;not null"`
	Phone           *string         `gorm:"column:phone"`
	ImageURL        *string         `gorm:"column:image_url"`
	Categories      pq.StringArray  `gorm:"column:categories;type:text[];not null;default:ARRAY[]::text[]"`
	DeliveryFee     decimal.Decimal `gorm:"column:delivery_fee;type:numeric(10,2);not null"`
	DeliveryTimeMin int             `gorm:"column:delivery_time_min;not null;default:30"`
	MinimumOrder    decimal.Decimal `gorm:"column:minimum_order;type:numeric(10,2);not null"`
	Rating          float64         `gorm:"column:rating;type:numeric(3,2);not null;default:0"`
	IsActive        bool            `gorm:"column:is_active;not null;default:true"`
	Products        []Product       `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
