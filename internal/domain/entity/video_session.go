package entity

import (
	"time"

	"github.com/google/uuid"
)

// VideoSessionStatus tracks a scheduled video consultation.
type VideoSessionStatus string

const (
	VideoSessionStatusScheduled   VideoSessionStatus = "SCHEDULED"
	VideoSessionStatusWaitingRoom VideoSessionStatus = "WAITING_ROOM"
	VideoSessionStatusInProgress  VideoSessionStatus = "IN_PROGRESS"
	VideoSessionStatusCompleted   VideoSessionStatus = "COMPLETED"
	VideoSessionStatusNoShow      VideoSessionStatus = "NO_SHOW"
	VideoSessionStatusCancelled   VideoSessionStatus = "CANCELLED"
	VideoSessionStatusFailed      VideoSessionStatus = "FAILED"
	VideoSessionStatusRescheduled VideoSessionStatus = "RESCHEDULED"
)

// AllVideoSessionStatuses lists every video session status.
var AllVideoSessionStatuses = []VideoSessionStatus{
	VideoSessionStatusScheduled,
	VideoSessionStatusWaitingRoom,
	VideoSessionStatusInProgress,
	VideoSessionStatusCompleted,
	VideoSessionStatusNoShow,
	VideoSessionStatusCancelled,
	VideoSessionStatusFailed,
	VideoSessionStatusRescheduled,
}

var videoSessionStatusDisplays = map[VideoSessionStatus]StatusDisplay{
	VideoSessionStatusScheduled:   {Label: "Visit scheduled", Icon: "calendar"},
	VideoSessionStatusWaitingRoom: {Label: "Doctor will join shortly", Icon: "clock"},
	VideoSessionStatusInProgress:  {Label: "Visit in progress", Icon: "video"},
	VideoSessionStatusCompleted:   {Label: "Visit completed", Icon: "check-circle"},
	VideoSessionStatusNoShow:      {Label: "Missed visit", Icon: "user-x"},
	VideoSessionStatusCancelled:   {Label: "Cancelled", Icon: "x-circle"},
	VideoSessionStatusFailed:      {Label: "Connection failed", Icon: "wifi-off"},
	VideoSessionStatusRescheduled: {Label: "Rescheduled", Icon: "rotate-cw"},
}

// videoSessionTerminal marks statuses that no longer hold a seat.
var videoSessionTerminal = map[VideoSessionStatus]bool{
	VideoSessionStatusCompleted: true,
	VideoSessionStatusNoShow:    true,
	VideoSessionStatusCancelled: true,
	VideoSessionStatusFailed:    true,
}

func (s VideoSessionStatus) Valid() bool {
	_, ok := videoSessionStatusDisplays[s]
	return ok
}

func (s VideoSessionStatus) IsTerminal() bool {
	return videoSessionTerminal[s]
}

// Display returns the patient-facing label and icon for the status.
func (s VideoSessionStatus) Display() StatusDisplay {
	if d, ok := videoSessionStatusDisplays[s]; ok {
		return d
	}
	warnUnmappedStatus("video_session_status", string(s))
	return StatusDisplay{Label: "Unknown", Icon: "help-circle"}
}

// VideoSession represents a scheduled video consultation between a
// patient and a doctor, booked against an availability slot.
type VideoSession struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID          `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"doctor_id"`
	SlotID    int                `gorm:"not null;index" json:"slot_id"`
	Status    VideoSessionStatus `gorm:"type:varchar(20);not null;default:'SCHEDULED';index" json:"status"`
	CreatedAt time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile   `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Slot    AvailabilitySlot `gorm:"foreignKey:SlotID" json:"slot,omitempty"`
}

func (VideoSession) TableName() string {
	return "video_sessions"
}
