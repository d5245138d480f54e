package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockType constants
const (
	StockTypeGray    = "Gray Stock"
	StockTypeFactory = "Factory Stock"
	StockTypeDesign  = "Design Stock"
)

// StockStatus constants
const (
	StockStatusAvailable  = "available"
	StockStatusLow        = "low"
	StockStatusOut        = "out"
	StockStatusProcessing = "processing"
)

// IsValidStockType reports whether t names one of the stock types
func IsValidStockType(t string) bool {
	switch t {
	case StockTypeGray, StockTypeFactory, StockTypeDesign:
		return true
	}
	return false
}

// IsValidStockStatus reports whether s is a known stock status
func IsValidStockStatus(s string) bool {
	switch s {
	case StockStatusAvailable, StockStatusLow, StockStatusOut, StockStatusProcessing:
		return true
	}
	return false
}

// Stock is an intake record of gray, factory or design stock
type Stock struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StockType      string         `gorm:"type:varchar(30);not null;index" json:"stockType"`
	Status         string         `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	Variants       []StockVariant `gorm:"foreignKey:StockID;constraint:OnDelete:CASCADE" json:"variants"`
	Details        StockDetails   `gorm:"column:stock_details;type:jsonb" json:"stockDetails"`
	AdditionalInfo AdditionalInfo `gorm:"embedded;embeddedPrefix:info_" json:"additionalInfo"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// StockVariant is the quantity held for one color
type StockVariant struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StockID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Color    string          `gorm:"type:varchar(100);not null" json:"color"`
	Quantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"quantity"`
	Unit     string          `gorm:"type:varchar(20);not null;default:'meters'" json:"unit"`
}

// AdditionalInfo holds batch level notes
type AdditionalInfo struct {
	BatchNumber  string `gorm:"type:varchar(100)" json:"batchNumber"`
	QualityGrade string `gorm:"type:varchar(50)" json:"qualityGrade"`
	Notes        string `gorm:"type:text" json:"notes"`
}

// StockDetails is a tagged union keyed by the stock type: exactly the member
// matching Stock.StockType is set.
type StockDetails struct {
	Gray    *GrayStockDetails    `json:"gray,omitempty"`
	Factory *FactoryStockDetails `json:"factory,omitempty"`
	Design  *DesignStockDetails  `json:"design,omitempty"`
}

type GrayStockDetails struct {
	Product      string     `json:"product"`
	Factory      string     `json:"factory"`
	Agent        string     `json:"agent"`
	OrderNumber  string     `json:"orderNumber"`
	PurchaseDate *time.Time `json:"purchaseDate,omitempty"`
}

type FactoryStockDetails struct {
	Product            string     `json:"product"`
	Factory            string     `json:"factory"`
	ProcessingStage    string     `json:"processingStage"`
	SentDate           *time.Time `json:"sentDate,omitempty"`
	ExpectedReturnDate *time.Time `json:"expectedReturnDate,omitempty"`
}

type DesignStockDetails struct {
	Product   string     `json:"product"`
	Design    string     `json:"design"`
	Warehouse string     `json:"warehouse"`
	ReadyDate *time.Time `json:"readyDate,omitempty"`
}

// Matches reports whether the populated member agrees with stockType
func (d StockDetails) Matches(stockType string) bool {
	set := 0
	if d.Gray != nil {
		set++
	}
	if d.Factory != nil {
		set++
	}
	if d.Design != nil {
		set++
	}
	if set != 1 {
		return false
	}
	switch stockType {
	case StockTypeGray:
		return d.Gray != nil
	case StockTypeFactory:
		return d.Factory != nil
	case StockTypeDesign:
		return d.Design != nil
	}
	return false
}

// ProductName returns the product named in whichever member is set
func (d StockDetails) ProductName() string {
	switch {
	case d.Gray != nil:
		return d.Gray.Product
	case d.Factory != nil:
		return d.Factory.Product
	case d.Design != nil:
		return d.Design.Product
	}
	return ""
}

func (StockDetails) GormDataType() string {
	return "jsonb"
}

func (d StockDetails) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *StockDetails) Scan(src interface{}) error {
	return scanJSON(src, d)
}

// TotalQuantity sums the variant quantities
func (s Stock) TotalQuantity() decimal.Decimal {
	return StockTotal(s.Variants)
}
