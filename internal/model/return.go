package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Return status values derived from the approve/reject flags
const (
	ReturnStatusPending  = "pending"
	ReturnStatusApproved = "approved"
	ReturnStatusRejected = "rejected"
)

// Return records goods sent back against an order
type Return struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Seq              int64           `gorm:"autoIncrement;uniqueIndex" json:"-"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"orderId"`
	Customer         string          `gorm:"type:varchar(255);not null" json:"customer"`
	ProductID        *uuid.UUID      `gorm:"type:uuid;index" json:"productId"`
	Product          string          `gorm:"type:varchar(255);not null" json:"product"`
	Color            string          `gorm:"type:varchar(100);not null" json:"color"`
	QuantityInMeters decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"quantityInMeters"`
	PricePerMeters   decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"pricePerMeters"`
	RefundAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"refundAmount"`
	ReturnReason     string          `gorm:"type:text;not null" json:"returnReason"`
	IsApprove        bool            `gorm:"not null;default:false" json:"isApprove"`
	IsRejected       bool            `gorm:"not null;default:false" json:"isRejected"`
	DecidedAt        *time.Time      `json:"decidedAt"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// Status derives pending/approved/rejected from the flags
func (r Return) Status() string {
	switch {
	case r.IsApprove:
		return ReturnStatusApproved
	case r.IsRejected:
		return ReturnStatusRejected
	}
	return ReturnStatusPending
}

// DisplayID formats the return number shown to users, e.g. RET-012
func (r Return) DisplayID() string {
	return DisplayID("RET", r.Seq)
}
