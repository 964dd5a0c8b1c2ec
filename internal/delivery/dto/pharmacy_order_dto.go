package dto

import (
	"time"

	"github.com/google/uuid"
)

type PrescriptionItem struct {
	Medication string `json:"medication" validate:"required,max=255"`
	Dosage     string `json:"dosage" validate:"required,max=100"`
	Frequency  string `json:"frequency" validate:"required,max=100"`
	Duration   string `json:"duration" validate:"omitempty,max=100"`
}

type CreatePrescriptionRequest struct {
	PatientID uuid.UUID          `json:"patient_id" validate:"required"`
	Vertical  string             `json:"vertical" validate:"required,oneof=HAIR_LOSS SEXUAL_HEALTH PCOS WEIGHT_MANAGEMENT"`
	Items     []PrescriptionItem `json:"items" validate:"required,min=1,dive"`
	Notes     string             `json:"notes" validate:"omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes" validate:"omitempty"`
}

type PrescriptionResponse struct {
	ID         uuid.UUID          `json:"id"`
	PatientID  uuid.UUID          `json:"patient_id"`
	DoctorID   uuid.UUID          `json:"doctor_id"`
	DoctorName string             `json:"doctor_name,omitempty"`
	Vertical   string             `json:"vertical"`
	Items      []PrescriptionItem `json:"items"`
	Notes      string             `json:"notes,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

type PrescriptionListResponse struct {
	Prescriptions []PrescriptionResponse `json:"prescriptions"`
	Total         int                    `json:"total"`
}

type PharmacyOrderResponse struct {
	ID             uuid.UUID `json:"id"`
	PatientID      uuid.UUID `json:"patient_id"`
	PrescriptionID uuid.UUID `json:"prescription_id"`
	Vertical       string    `json:"vertical"`
	Status         string    `json:"status"`
	StatusLabel    string    `json:"status_label"`
	StatusIcon     string    `json:"status_icon"`
	DeliveryNotes  string    `json:"delivery_notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type PharmacyOrderListResponse struct {
	Orders []PharmacyOrderResponse `json:"orders"`
	Total  int                     `json:"total"`
}
