package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookedSlotStatus tracks a home collection appointment for a lab order.
type BookedSlotStatus string

const (
	BookedSlotStatusBooked    BookedSlotStatus = "BOOKED"
	BookedSlotStatusCompleted BookedSlotStatus = "COMPLETED"
	BookedSlotStatusCancelled BookedSlotStatus = "CANCELLED"
	BookedSlotStatusMissed    BookedSlotStatus = "MISSED"
)

// AllBookedSlotStatuses lists every booked slot status.
var AllBookedSlotStatuses = []BookedSlotStatus{
	BookedSlotStatusBooked,
	BookedSlotStatusCompleted,
	BookedSlotStatusCancelled,
	BookedSlotStatusMissed,
}

var bookedSlotStatusDisplays = map[BookedSlotStatus]StatusDisplay{
	BookedSlotStatusBooked:    {Label: "Collection booked", Icon: "calendar"},
	BookedSlotStatusCompleted: {Label: "Collection completed", Icon: "check-circle"},
	BookedSlotStatusCancelled: {Label: "Cancelled", Icon: "x-circle"},
	BookedSlotStatusMissed:    {Label: "Missed", Icon: "user-x"},
}

func (s BookedSlotStatus) Valid() bool {
	_, ok := bookedSlotStatusDisplays[s]
	return ok
}

// Display returns the patient-facing label and icon for the status.
func (s BookedSlotStatus) Display() StatusDisplay {
	if d, ok := bookedSlotStatusDisplays[s]; ok {
		return d
	}
	warnUnmappedStatus("booked_slot_status", string(s))
	return StatusDisplay{Label: "Unknown", Icon: "help-circle"}
}

// BookedSlot represents the home collection window booked for a lab
// order.
type BookedSlot struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	LabOrderID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex" json:"lab_order_id"`
	StartAt    time.Time        `gorm:"not null;index" json:"start_at"`
	EndAt      time.Time        `gorm:"not null" json:"end_at"`
	Status     BookedSlotStatus `gorm:"type:varchar(20);not null;default:'BOOKED';index" json:"status"`
	CreatedAt  time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BookedSlot) TableName() string {
	return "booked_slots"
}

// IsBooked checks if the slot is still active.
func (b *BookedSlot) IsBooked() bool {
	return b.Status == BookedSlotStatusBooked
}

// Cancel changes the slot status to cancelled.
func (b *BookedSlot) Cancel() {
	b.Status = BookedSlotStatusCancelled
}

// Rebook reactivates a resolved slot with a new collection window.
func (b *BookedSlot) Rebook(startAt, endAt time.Time) {
	b.StartAt = startAt
	b.EndAt = endAt
	b.Status = BookedSlotStatusBooked
}
