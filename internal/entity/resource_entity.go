package entity

import (
	"time"

	"github.com/google/uuid"
)

// ResourceStatus represents whether a resource can accept bookings.
type ResourceStatus string

const (
	ResourceStatusActive   ResourceStatus = "active"
	ResourceStatusInactive ResourceStatus = "inactive"
)

// Resource is the catalog collaborator's record of a rentable item.
type Resource struct {
	Id         uuid.UUID
	OwnerId    uuid.UUID
	Name       string
	Status     ResourceStatus
	PolicyTier PolicyTier
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (r *Resource) Active() bool {
	return r.Status == ResourceStatusActive
}
