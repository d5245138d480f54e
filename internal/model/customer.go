package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CustomerType enum constants
const (
	CustomerTypeWholesale = "Wholesale"
	CustomerTypeRetail    = "Retail"
)

// Customer is a wholesale or retail buyer
type Customer struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Type        string          `gorm:"type:varchar(20);not null;index" json:"type"` // Wholesale, Retail
	Email       string          `gorm:"type:varchar(255)" json:"email"`
	Phone       string          `gorm:"type:varchar(50)" json:"phone"`
	City        string          `gorm:"type:varchar(100);index" json:"city"`
	CreditLimit decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"creditLimit"`
	Address     string          `gorm:"type:text" json:"address"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}
