package model

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors an identity issued by the external auth provider.
// Credentials never reach this service; rows are synced from token claims.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ExternalID string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"externalId"`
	Email      string    `gorm:"type:varchar(255);index" json:"email"`
	Name       string    `gorm:"type:varchar(255)" json:"name"`
	Role       string    `gorm:"type:varchar(50);not null;default:'staff'" json:"role"`
	LastSeenAt time.Time `json:"lastSeenAt"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
