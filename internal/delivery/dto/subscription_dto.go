package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreatePlanRequest struct {
	Name         string          `json:"name" validate:"required,max=255"`
	Vertical     string          `json:"vertical" validate:"required,oneof=HAIR_LOSS SEXUAL_HEALTH PCOS WEIGHT_MANAGEMENT"`
	Description  string          `json:"description" validate:"omitempty"`
	MonthlyPrice decimal.Decimal `json:"monthly_price" validate:"required"`
	DurationDays int             `json:"duration_days" validate:"required,gte=1"`
}

type PlanResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Vertical     string          `json:"vertical"`
	Description  string          `json:"description,omitempty"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	DurationDays int             `json:"duration_days"`
}

type PlanListResponse struct {
	Plans []PlanResponse `json:"plans"`
	Total int            `json:"total"`
}

type SubscribeRequest struct {
	PlanID uuid.UUID `json:"plan_id" validate:"required"`
}

type UpdateSubscriptionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE PAUSED CANCELLED EXPIRED"`
}

type SubscriptionResponse struct {
	ID          uuid.UUID     `json:"id"`
	PatientID   uuid.UUID     `json:"patient_id"`
	PlanID      uuid.UUID     `json:"plan_id"`
	Status      string        `json:"status"`
	StatusLabel string        `json:"status_label"`
	StatusIcon  string        `json:"status_icon"`
	StartedAt   time.Time     `json:"started_at"`
	ExpiresAt   time.Time     `json:"expires_at"`
	Plan        *PlanResponse `json:"plan,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

type SubscriptionListResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
	Total         int                    `json:"total"`
}
