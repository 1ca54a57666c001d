package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Reservation GORM model. Quote and cancellation breakdowns are stored as
// JSON snapshots next to the scalar columns the queries need; rows are never
// physically deleted, terminal reservations stay for audit and lineage.
type Reservation struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Code        string    `gorm:"type:varchar(24);uniqueIndex;not null"`
	RequesterID uuid.UUID `gorm:"type:uuid;not null;index"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ResourceID  uuid.UUID `gorm:"type:uuid;not null;index:idx_reservations_resource_window"`
	StartAt     time.Time `gorm:"not null;index:idx_reservations_resource_window"`
	EndAt       time.Time `gorm:"not null;index:idx_reservations_resource_window"`
	Quantity    int       `gorm:"not null;default:1"`

	Status        string `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentStatus string `gorm:"type:varchar(30);not null;default:'pending';index"`

	QuoteBreakdown datatypes.JSON  `gorm:"type:jsonb"`
	QuoteTotal     decimal.Decimal `gorm:"type:numeric(14,3)"`
	QuoteCurrency  string          `gorm:"type:varchar(3)"`

	Cancellation datatypes.JSON `gorm:"type:jsonb"`

	ExpiresAt time.Time `gorm:"not null;index"`

	ParentID *uuid.UUID `gorm:"type:uuid"`
	Parent   *Reservation `gorm:"foreignKey:ParentID"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Reservation) TableName() string {
	return "reservations"
}
