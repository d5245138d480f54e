package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateProduct  = "CREATE_PRODUCT"
	ActionUpdateProduct  = "UPDATE_PRODUCT"
	ActionDeleteProduct  = "DELETE_PRODUCT"
	ActionCreateCustomer = "CREATE_CUSTOMER"
	ActionUpdateCustomer = "UPDATE_CUSTOMER"
	ActionDeleteCustomer = "DELETE_CUSTOMER"
	ActionCreateOrder    = "CREATE_ORDER"
	ActionUpdateOrder    = "UPDATE_ORDER"
	ActionDeleteOrder    = "DELETE_ORDER"
	ActionCreateStock    = "CREATE_STOCK"
	ActionUpdateStock    = "UPDATE_STOCK"
	ActionDeleteStock    = "DELETE_STOCK"
	ActionCreateReturn   = "CREATE_RETURN"
	ActionUpdateReturn   = "UPDATE_RETURN"
	ActionApproveReturn  = "APPROVE_RETURN"
	ActionRejectReturn   = "REJECT_RETURN"
	ActionDeleteReturn   = "DELETE_RETURN"
	ActionUpdateBusiness = "UPDATE_BUSINESS"
	ActionUpdateSettings = "UPDATE_NOTIFICATION_SETTINGS"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Actor      string    `gorm:"type:varchar(255);index" json:"actor"` // subject of the auth token, empty for system
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string    `gorm:"type:varchar(50);index" json:"entityId"`
	EntityName string    `gorm:"type:varchar(255)" json:"entityName,omitempty"`
	Details    string    `gorm:"type:jsonb" json:"details"` // Serialized JSON payload of the action
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}
