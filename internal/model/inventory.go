package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Unit constants
const (
	UnitMeters = "meters"
	UnitSets   = "sets"
)

// Product represents a fabric article sold in one or more colors
type Product struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string           `gorm:"type:varchar(255);not null;index" json:"name"`
	Category  string           `gorm:"type:varchar(100);index" json:"category"`
	Tags      StringList       `gorm:"type:jsonb" json:"tags"`
	Unit      string           `gorm:"type:varchar(20);not null;default:'meters'" json:"unit"` // meters, sets
	Variants  []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
}

// ProductVariant is one color of a product with its price and on-hand stock.
// StockInMeters is only changed through the stock ledger or an explicit product edit.
type ProductVariant struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_product_variant_color" json:"-"`
	Color          string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_product_variant_color" json:"color"`
	PricePerMeters decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"pricePerMeters"`
	StockInMeters  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"stockInMeters"`
	CreatedAt      time.Time       `json:"-"`
	UpdatedAt      time.Time       `json:"-"`
}

// Stock movement reasons
const (
	MovementOrderPlaced    = "ORDER_PLACED"
	MovementOrderUpdated   = "ORDER_UPDATED"
	MovementOrderDeleted   = "ORDER_DELETED"
	MovementReturnApproved = "RETURN_APPROVED"
	MovementReturnDeleted  = "RETURN_DELETED"
	MovementAdjustment     = "ADJUSTMENT"
)

// Movement reference types
const (
	RefTypeOrder   = "ORDER"
	RefTypeReturn  = "RETURN"
	RefTypeProduct = "PRODUCT"
)

// StockMovement is one signed change of a product variant's stock
type StockMovement struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"productId"`
	Color         string          `gorm:"type:varchar(100);not null" json:"color"`
	Delta         decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"delta"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"balanceAfter"`
	Reason        string          `gorm:"type:varchar(30);not null" json:"reason"`
	ReferenceType string          `gorm:"type:varchar(20);not null;index" json:"referenceType"`
	ReferenceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"referenceId"`
	CreatedAt     time.Time       `gorm:"index" json:"createdAt"`
}
