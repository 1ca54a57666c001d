package model

import (
	"time"

	"github.com/google/uuid"
)

// Resource GORM model: the catalog's view of a rentable item, consumed
// read-only by the booking core (owner, active flag, policy tier).
type Resource struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Status     string    `gorm:"type:varchar(20);not null;default:'active';index"`
	PolicyTier string    `gorm:"type:varchar(20);not null;default:'moderate'"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (Resource) TableName() string {
	return "resources"
}
