package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSlotRequest struct {
	DoctorID   uuid.UUID `json:"doctor_id" validate:"required"`
	SlotDate   string    `json:"slot_date" validate:"required"` // YYYY-MM-DD
	StartTime  string    `json:"start_time" validate:"required"` // HH:MM
	EndTime    string    `json:"end_time" validate:"required"`   // HH:MM
	TotalQuota int       `json:"total_quota" validate:"required,gte=1,lte=100"`
}

type UpdateSlotRequest struct {
	SlotDate   string `json:"slot_date" validate:"omitempty"`
	StartTime  string `json:"start_time" validate:"omitempty"`
	EndTime    string `json:"end_time" validate:"omitempty"`
	TotalQuota *int   `json:"total_quota" validate:"omitempty,gte=1,lte=100"`
}

type DoctorResponse struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	FullName           string    `json:"full_name"`
	RegistrationNumber string    `json:"registration_number"`
	Specialization     string    `json:"specialization"`
	Biography          string    `json:"biography,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

type SlotResponse struct {
	ID         int             `json:"id"`
	DoctorID   uuid.UUID       `json:"doctor_id"`
	SlotDate   string          `json:"slot_date"`
	StartTime  string          `json:"start_time"`
	EndTime    string          `json:"end_time"`
	TotalQuota int             `json:"total_quota"`
	Doctor     *DoctorResponse `json:"doctor,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

type BookSessionRequest struct {
	SlotID int `json:"slot_id" validate:"required"`
}

type UpdateSessionStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type VideoSessionResponse struct {
	ID          uuid.UUID     `json:"id"`
	PatientID   uuid.UUID     `json:"patient_id"`
	DoctorID    uuid.UUID     `json:"doctor_id"`
	SlotID      int           `json:"slot_id"`
	Status      string        `json:"status"`
	StatusLabel string        `json:"status_label"`
	StatusIcon  string        `json:"status_icon"`
	Slot        *SlotResponse `json:"slot,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type VideoSessionListResponse struct {
	Sessions []VideoSessionResponse `json:"sessions"`
	Total    int                    `json:"total"`
}
