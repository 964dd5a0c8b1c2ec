package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus tracks a pharmacy order from prescription through
// fulfillment and delivery.
type OrderStatus string

const (
	OrderStatusPrescriptionCreated OrderStatus = "PRESCRIPTION_CREATED"
	OrderStatusSentToPharmacy      OrderStatus = "SENT_TO_PHARMACY"
	OrderStatusPharmacyPreparing   OrderStatus = "PHARMACY_PREPARING"
	OrderStatusPharmacyReady       OrderStatus = "PHARMACY_READY"
	OrderStatusPickupArranged      OrderStatus = "PICKUP_ARRANGED"
	OrderStatusOutForDelivery      OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered           OrderStatus = "DELIVERED"
	OrderStatusDeliveryFailed      OrderStatus = "DELIVERY_FAILED"
	OrderStatusRescheduled         OrderStatus = "RESCHEDULED"
	OrderStatusCancelled           OrderStatus = "CANCELLED"
)

// AllOrderStatuses lists every pharmacy order status.
var AllOrderStatuses = []OrderStatus{
	OrderStatusPrescriptionCreated,
	OrderStatusSentToPharmacy,
	OrderStatusPharmacyPreparing,
	OrderStatusPharmacyReady,
	OrderStatusPickupArranged,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusDeliveryFailed,
	OrderStatusRescheduled,
	OrderStatusCancelled,
}

var orderStatusDisplays = map[OrderStatus]StatusDisplay{
	OrderStatusPrescriptionCreated: {Label: "Prescription created", Icon: "file-text"},
	OrderStatusSentToPharmacy:      {Label: "Sent to pharmacy", Icon: "send"},
	OrderStatusPharmacyPreparing:   {Label: "Pharmacy is preparing your order", Icon: "package"},
	OrderStatusPharmacyReady:       {Label: "Ready at pharmacy", Icon: "check"},
	OrderStatusPickupArranged:      {Label: "Pickup arranged", Icon: "calendar"},
	OrderStatusOutForDelivery:      {Label: "Out for delivery", Icon: "truck"},
	OrderStatusDelivered:           {Label: "Delivered", Icon: "check-circle"},
	OrderStatusDeliveryFailed:      {Label: "Delivery failed", Icon: "alert-triangle"},
	OrderStatusRescheduled:         {Label: "Delivery rescheduled", Icon: "rotate-cw"},
	OrderStatusCancelled:           {Label: "Cancelled", Icon: "x-circle"},
}

var orderTerminal = map[OrderStatus]bool{
	OrderStatusDelivered: true,
	OrderStatusCancelled: true,
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusDisplays[s]
	return ok
}

func (s OrderStatus) IsTerminal() bool {
	return orderTerminal[s]
}

// Display returns the patient-facing label and icon for the status.
func (s OrderStatus) Display() StatusDisplay {
	if d, ok := orderStatusDisplays[s]; ok {
		return d
	}
	warnUnmappedStatus("order_status", string(s))
	return StatusDisplay{Label: "Unknown", Icon: "help-circle"}
}

// PharmacyOrder represents a medication order fulfilled by a partner
// pharmacy and delivered to the patient.
type PharmacyOrder struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"patient_id"`
	PrescriptionID uuid.UUID   `gorm:"type:uuid;not null;index" json:"prescription_id"`
	Vertical       Vertical    `gorm:"type:varchar(30);not null" json:"vertical"`
	Status         OrderStatus `gorm:"type:varchar(30);not null;default:'PRESCRIPTION_CREATED';index" json:"status"`
	DeliveryNotes  string      `gorm:"type:text" json:"delivery_notes,omitempty"`
	CreatedAt      time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient      PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Prescription Prescription   `gorm:"foreignKey:PrescriptionID" json:"prescription,omitempty"`
}

func (PharmacyOrder) TableName() string {
	return "pharmacy_orders"
}
