package model

import (
	"time"

	"github.com/google/uuid"
)

// Business is the single profile of the company running the ERP
type Business struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BusinessName string    `gorm:"type:varchar(255);not null" json:"businessName"`
	OwnerName    string    `gorm:"type:varchar(255)" json:"ownerName"`
	Email        string    `gorm:"type:varchar(255)" json:"email"`
	Phone        string    `gorm:"type:varchar(50)" json:"phone"`
	Address      string    `gorm:"type:text" json:"address"`
	City         string    `gorm:"type:varchar(100)" json:"city"`
	State        string    `gorm:"type:varchar(100)" json:"state"`
	Pincode      string    `gorm:"type:varchar(20)" json:"pincode"`
	GSTNumber    string    `gorm:"column:gst_number;type:varchar(30)" json:"gstNumber"`
	Website      string    `gorm:"type:varchar(255)" json:"website"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
