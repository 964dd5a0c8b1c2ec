package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateLabOrderRequest struct {
	PatientID uuid.UUID `json:"patient_id" validate:"required"`
	Vertical  string    `json:"vertical" validate:"required,oneof=HAIR_LOSS SEXUAL_HEALTH PCOS WEIGHT_MANAGEMENT"`
	PanelName string    `json:"panel_name" validate:"required,max=255"`
	Notes     string    `json:"notes" validate:"omitempty"`
}

type BookCollectionSlotRequest struct {
	StartAt string `json:"start_at" validate:"required"` // RFC3339
	EndAt   string `json:"end_at" validate:"required"`   // RFC3339
}

type AssignPhlebotomistRequest struct {
	PhlebotomistID uuid.UUID `json:"phlebotomist_id" validate:"required"`
}

type UpdateLabOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type BookedSlotResponse struct {
	ID          uuid.UUID `json:"id"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Status      string    `json:"status"`
	StatusLabel string    `json:"status_label"`
	StatusIcon  string    `json:"status_icon"`
}

type LabOrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	PatientID      uuid.UUID           `json:"patient_id"`
	PhlebotomistID *uuid.UUID          `json:"phlebotomist_id,omitempty"`
	Vertical       string              `json:"vertical"`
	PanelName      string              `json:"panel_name"`
	Status         string              `json:"status"`
	StatusLabel    string              `json:"status_label"`
	StatusIcon     string              `json:"status_icon"`
	Notes          string              `json:"notes,omitempty"`
	Slot           *BookedSlotResponse `json:"slot,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

type LabOrderListResponse struct {
	Orders []LabOrderResponse `json:"orders"`
	Total  int                `json:"total"`
}

type SLAResponse struct {
	Status       string    `json:"status"`
	Reason       *string   `json:"reason,omitempty"`
	HoursOverdue *int      `json:"hours_overdue,omitempty"`
	DeadlineAt   time.Time `json:"deadline_at"`
}

type EscalationItemResponse struct {
	Order       LabOrderResponse `json:"order"`
	PatientName string           `json:"patient_name"`
	SLA         SLAResponse      `json:"sla"`
}

type EscalationBoardResponse struct {
	Items []EscalationItemResponse `json:"items"`
	Total int                      `json:"total"`
}
