package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CancellationPolicy GORM model. One row per tier; the ordered threshold
// schedule is a jsonb array.
type CancellationPolicy struct {
	ID                      uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Tier                    string         `gorm:"type:varchar(20);uniqueIndex;not null"`
	Thresholds              datatypes.JSON `gorm:"type:jsonb;not null"`
	ServiceFeeNonRefundable bool           `gorm:"not null;default:false"`
	CreatedAt               time.Time      `gorm:"autoCreateTime"`
	UpdatedAt               time.Time      `gorm:"autoUpdateTime"`
}

func (CancellationPolicy) TableName() string {
	return "cancellation_policies"
}
