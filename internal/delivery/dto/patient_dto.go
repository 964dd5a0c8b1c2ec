package dto

import (
	"github.com/google/uuid"
)

type UpdatePatientProfileRequest struct {
	FullName    string `json:"full_name" validate:"omitempty,min=2,max=255"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=8,max=20"`
	Address     string `json:"address" validate:"omitempty"`
}

type PatientProfileResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	DateOfBirth string    `json:"date_of_birth"`
	Gender      string    `json:"gender"`
	Address     string    `json:"address,omitempty"`
}
