package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterPatientRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FullName    string `json:"full_name" validate:"required,min=2,max=255"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=8,max=20"`
	DateOfBirth string `json:"date_of_birth" validate:"required"`
	Gender      string `json:"gender" validate:"required,oneof=M F"`
	Address     string `json:"address" validate:"omitempty"`
}

type RegisterDoctorRequest struct {
	Email              string `json:"email" validate:"required,email"`
	Password           string `json:"password" validate:"required,min=8"`
	FullName           string `json:"full_name" validate:"required,min=2,max=255"`
	RegistrationNumber string `json:"registration_number" validate:"required,max=50"`
	Specialization     string `json:"specialization" validate:"required,max=100"`
	Biography          string `json:"biography" validate:"omitempty"`
}

type RegisterStaffRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2,max=255"`
	Role     string `json:"role" validate:"required,oneof=ADMIN LAB PHLEBOTOMIST PHARMACY DELIVERY"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	RoleLabel string    `json:"role_label"`
	RoleColor string    `json:"role_color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
