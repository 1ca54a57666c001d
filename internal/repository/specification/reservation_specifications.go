package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByResource filters reservations to a single rentable resource.
type ByResource struct {
	ResourceID uuid.UUID
}

func (s ByResource) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("resource_id = ?", s.ResourceID)
}

// ByCode filters by the human-readable reference code.
type ByCode struct {
	Code string
}

func (s ByCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("code = ?", s.Code)
}

// ByStatuses filters to reservations in any of the given statuses.
type ByStatuses struct {
	Statuses []string
}

func (s ByStatuses) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", s.Statuses)
}

// ExcludeID leaves out one reservation, used when re-checking conflicts for
// a reservation that already exists.
type ExcludeID struct {
	ID uuid.UUID
}

func (s ExcludeID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id <> ?", s.ID)
}

// OverlappingWindow matches reservations whose window strictly overlaps
// [StartAt, EndAt): existing.start < end AND existing.end > start. Touching
// boundaries do not match, so back-to-back bookings pass.
type OverlappingWindow struct {
	StartAt time.Time
	EndAt   time.Time
}

func (s OverlappingWindow) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("start_at < ? AND end_at > ?", s.EndAt, s.StartAt)
}

// WindowWithin matches reservations intersecting a display date range, for
// the availability listing surface.
type WindowWithin struct {
	From time.Time
	To   time.Time
}

func (s WindowWithin) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("start_at < ? AND end_at > ?", s.To, s.From)
}

// ExpiredBefore matches reservations whose payment grace period lapsed.
type ExpiredBefore struct {
	At time.Time
}

func (s ExpiredBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("expires_at <= ?", s.At)
}

// StartedBefore matches reservations whose rental window has begun.
type StartedBefore struct {
	At time.Time
}

func (s StartedBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("start_at <= ?", s.At)
}

// EndedBefore matches reservations whose rental window has ended.
type EndedBefore struct {
	At time.Time
}

func (s EndedBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("end_at <= ?", s.At)
}

// PaymentStatusNot excludes reservations with the given payment status.
type PaymentStatusNot struct {
	Status string
}

func (s PaymentStatusNot) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("payment_status <> ?", s.Status)
}
