package entity

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot represents doctor availability for video visits with
// quota management.
// Note: remaining quota is calculated from Redis/DB query, not stored here.
type AvailabilitySlot struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	SlotDate   time.Time `gorm:"type:date;not null;index" json:"slot_date"`
	StartTime  string    `gorm:"type:time;not null" json:"start_time"`
	EndTime    string    `gorm:"type:time;not null" json:"end_time"`
	TotalQuota int       `gorm:"not null" json:"total_quota"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor   DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Sessions []VideoSession `gorm:"foreignKey:SlotID" json:"sessions,omitempty"`
}

func (AvailabilitySlot) TableName() string {
	return "availability_slots"
}

// SlotFilter is a domain-level filter for querying availability slots.
// Used by the repository layer to avoid coupling with delivery DTOs.
type SlotFilter struct {
	StartAt        string // Format: YYYY-MM-DD
	EndAt          string // Format: YYYY-MM-DD
	DoctorName     string // Filter by doctor name (ILIKE)
	Specialization string // Filter by specialization (ILIKE)
}
