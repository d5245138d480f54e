package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus constants
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusShipped, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// IsValidOrderStatus reports whether s is one of the known order statuses
func IsValidOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionOrder reports whether an order may move from one status to another.
// Staying in the same status is always allowed.
func CanTransitionOrder(from, to string) bool {
	if !IsValidOrderStatus(from) || !IsValidOrderStatus(to) {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is a customer order for one or more product colors
type Order struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Seq          int64       `gorm:"autoIncrement;uniqueIndex" json:"-"`
	CustomerID   *uuid.UUID  `gorm:"type:uuid;index" json:"customerId"`
	Customer     string      `gorm:"type:varchar(255);not null;index" json:"customer"`
	Status       string      `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	OrderDate    time.Time   `gorm:"not null" json:"orderDate"`
	DeliveryDate *time.Time  `json:"deliveryDate"`
	Items        []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"orderItems"`
	Notes        string      `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// OrderItem is a line of an order. Product and Color are the display values
// captured when the line was written.
type OrderItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"productId"`
	Product        string          `gorm:"type:varchar(255);not null" json:"product"`
	Color          string          `gorm:"type:varchar(100);not null" json:"color"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"quantity"`
	Unit           string          `gorm:"type:varchar(20);not null;default:'meters'" json:"unit"`
	PricePerMeters decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"pricePerMeters"`
}

// Total is the derived order amount; it is never stored
func (o Order) Total() decimal.Decimal {
	return OrderTotal(o.Items)
}

// DisplayID formats the order number shown to users, e.g. ORD-007
func (o Order) DisplayID() string {
	return DisplayID("ORD", o.Seq)
}
