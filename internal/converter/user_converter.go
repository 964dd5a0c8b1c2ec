package converter

import (
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	display := user.Role.Display()
	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		RoleLabel: display.Label,
		RoleColor: display.Color,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// PatientProfileToResponse converts a PatientProfile entity to its DTO
func PatientProfileToResponse(profile *entity.PatientProfile) *dto.PatientProfileResponse {
	if profile == nil {
		return nil
	}

	return &dto.PatientProfileResponse{
		UserID:      profile.UserID,
		Email:       profile.User.Email,
		FullName:    profile.User.FullName,
		PhoneNumber: profile.PhoneNumber,
		DateOfBirth: profile.DateOfBirth.Format("2006-01-02"),
		Gender:      profile.Gender,
		Address:     profile.Address,
	}
}

// DoctorToResponse converts a DoctorProfile entity to DoctorResponse DTO
func DoctorToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:                 profile.UserID,
		Email:              profile.User.Email,
		FullName:           profile.User.FullName,
		RegistrationNumber: profile.RegistrationNumber,
		Specialization:     profile.Specialization,
		Biography:          profile.Biography,
	}
}

// DoctorsToResponses converts a slice of DoctorProfile entities to DTOs
func DoctorsToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i, profile := range profiles {
		responses[i] = *DoctorToResponse(&profile)
	}
	return responses
}
