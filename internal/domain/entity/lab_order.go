package entity

import (
	"time"

	"github.com/google/uuid"
)

// LabOrderStatus tracks a lab order from creation through sample
// collection, processing, doctor review, and closure. Values are shared
// with the client apps and the generated schema.
type LabOrderStatus string

const (
	LabOrderStatusOrdered              LabOrderStatus = "ORDERED"
	LabOrderStatusSlotBooked           LabOrderStatus = "SLOT_BOOKED"
	LabOrderStatusPhlebotomistAssigned LabOrderStatus = "PHLEBOTOMIST_ASSIGNED"
	LabOrderStatusSampleCollected      LabOrderStatus = "SAMPLE_COLLECTED"
	LabOrderStatusCollectionFailed     LabOrderStatus = "COLLECTION_FAILED"
	LabOrderStatusDeliveredToLab       LabOrderStatus = "DELIVERED_TO_LAB"
	LabOrderStatusSampleReceived       LabOrderStatus = "SAMPLE_RECEIVED"
	LabOrderStatusSampleIssue          LabOrderStatus = "SAMPLE_ISSUE"
	LabOrderStatusProcessing           LabOrderStatus = "PROCESSING"
	LabOrderStatusResultsReady         LabOrderStatus = "RESULTS_READY"
	LabOrderStatusDoctorReviewed       LabOrderStatus = "DOCTOR_REVIEWED"
	LabOrderStatusResultsUploaded      LabOrderStatus = "RESULTS_UPLOADED"
	LabOrderStatusCancelled            LabOrderStatus = "CANCELLED"
	LabOrderStatusExpired              LabOrderStatus = "EXPIRED"
	LabOrderStatusClosed               LabOrderStatus = "CLOSED"
)

// AllLabOrderStatuses lists every lab order status.
var AllLabOrderStatuses = []LabOrderStatus{
	LabOrderStatusOrdered,
	LabOrderStatusSlotBooked,
	LabOrderStatusPhlebotomistAssigned,
	LabOrderStatusSampleCollected,
	LabOrderStatusCollectionFailed,
	LabOrderStatusDeliveredToLab,
	LabOrderStatusSampleReceived,
	LabOrderStatusSampleIssue,
	LabOrderStatusProcessing,
	LabOrderStatusResultsReady,
	LabOrderStatusDoctorReviewed,
	LabOrderStatusResultsUploaded,
	LabOrderStatusCancelled,
	LabOrderStatusExpired,
	LabOrderStatusClosed,
}

var labOrderStatusDisplays = map[LabOrderStatus]StatusDisplay{
	LabOrderStatusOrdered:              {Label: "Test ordered", Icon: "clipboard"},
	LabOrderStatusSlotBooked:           {Label: "Collection slot booked", Icon: "calendar"},
	LabOrderStatusPhlebotomistAssigned: {Label: "Phlebotomist assigned", Icon: "user-check"},
	LabOrderStatusSampleCollected:      {Label: "Sample collected", Icon: "droplet"},
	LabOrderStatusCollectionFailed:     {Label: "Collection failed", Icon: "alert-triangle"},
	LabOrderStatusDeliveredToLab:       {Label: "Sample on the way to lab", Icon: "truck"},
	LabOrderStatusSampleReceived:       {Label: "Sample received at lab", Icon: "inbox"},
	LabOrderStatusSampleIssue:          {Label: "Issue with sample", Icon: "alert-triangle"},
	LabOrderStatusProcessing:           {Label: "Processing", Icon: "loader"},
	LabOrderStatusResultsReady:         {Label: "Results ready", Icon: "file-text"},
	LabOrderStatusDoctorReviewed:       {Label: "Reviewed by your doctor", Icon: "stethoscope"},
	LabOrderStatusResultsUploaded:      {Label: "Results uploaded", Icon: "upload"},
	LabOrderStatusCancelled:            {Label: "Cancelled", Icon: "x-circle"},
	LabOrderStatusExpired:              {Label: "Expired", Icon: "clock"},
	LabOrderStatusClosed:               {Label: "Closed", Icon: "check-circle"},
}

// labOrderTerminal marks statuses with no further progress.
var labOrderTerminal = map[LabOrderStatus]bool{
	LabOrderStatusCancelled: true,
	LabOrderStatusExpired:   true,
	LabOrderStatusClosed:    true,
}

func (s LabOrderStatus) Valid() bool {
	_, ok := labOrderStatusDisplays[s]
	return ok
}

func (s LabOrderStatus) IsTerminal() bool {
	return labOrderTerminal[s]
}

// Display returns the patient-facing label and icon for the status.
func (s LabOrderStatus) Display() StatusDisplay {
	if d, ok := labOrderStatusDisplays[s]; ok {
		return d
	}
	warnUnmappedStatus("lab_order_status", string(s))
	return StatusDisplay{Label: "Unknown", Icon: "help-circle"}
}

// LabOrder represents a diagnostic test order for a patient.
type LabOrder struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"patient_id"`
	OrderedByID    uuid.UUID      `gorm:"type:uuid;not null" json:"ordered_by_id"`
	PhlebotomistID *uuid.UUID     `gorm:"type:uuid;index" json:"phlebotomist_id,omitempty"`
	Vertical       Vertical       `gorm:"type:varchar(30);not null" json:"vertical"`
	PanelName      string         `gorm:"type:varchar(255);not null" json:"panel_name"`
	Status         LabOrderStatus `gorm:"type:varchar(30);not null;default:'ORDERED';index" json:"status"`
	DeadlineAt     *time.Time     `json:"deadline_at,omitempty"`
	Notes          string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient   PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	OrderedBy User           `gorm:"foreignKey:OrderedByID" json:"ordered_by,omitempty"`
	Slot      *BookedSlot    `gorm:"foreignKey:LabOrderID" json:"slot,omitempty"`
}

func (LabOrder) TableName() string {
	return "lab_orders"
}
