package model

import (
	"time"

	"github.com/google/uuid"
)

// Delivery outcomes recorded for every outbound message
const (
	MessageStatusDelivered    = "Delivered"
	MessageStatusNotDelivered = "Not Delivered"
)

// WhatsappNotification is the singleton settings row for WhatsApp alerts
type WhatsappNotification struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Enabled         bool       `gorm:"not null;default:false" json:"enabled"`
	Recipients      StringList `gorm:"type:jsonb" json:"recipients"`
	OrderUpdates    bool       `gorm:"not null;default:true" json:"orderUpdates"`
	ProductUpdates  bool       `gorm:"not null;default:true" json:"productUpdates"`
	StockUpdates    bool       `gorm:"not null;default:true" json:"stockUpdates"`
	CustomerUpdates bool       `gorm:"not null;default:true" json:"customerUpdates"`
	ReturnUpdates   bool       `gorm:"not null;default:true" json:"returnUpdates"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// WhatsappMessage is an append-only record of one delivery attempt
type WhatsappMessage struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Event      string    `gorm:"type:varchar(50);not null;index" json:"event"`
	Recipient  string    `gorm:"type:varchar(50);not null" json:"recipient"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	Status     string    `gorm:"type:varchar(20);not null;index" json:"status"`
	Error      string    `gorm:"type:text" json:"error,omitempty"`
	ProviderID string    `gorm:"type:varchar(64)" json:"providerId,omitempty"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}
