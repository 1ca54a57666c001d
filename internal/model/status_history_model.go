package model

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatusHistory GORM model. Append-only: rows are written in the
// same transaction as the status update and never updated or deleted.
type ReservationStatusHistory struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ReservationID  uuid.UUID `gorm:"type:uuid;not null;index"`
	PreviousStatus string    `gorm:"type:varchar(20)"`
	NewStatus      string    `gorm:"type:varchar(20);not null"`
	ActorID        uuid.UUID `gorm:"type:uuid"`
	Reason         string    `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`

	Reservation Reservation `gorm:"foreignKey:ReservationID"`
}

func (ReservationStatusHistory) TableName() string {
	return "reservation_status_histories"
}
