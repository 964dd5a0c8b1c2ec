package converter

import (
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"

	"github.com/google/uuid"
)

// SlotToResponse converts an AvailabilitySlot entity to SlotResponse DTO
func SlotToResponse(slot *entity.AvailabilitySlot) *dto.SlotResponse {
	if slot == nil {
		return nil
	}

	response := &dto.SlotResponse{
		ID:         slot.ID,
		DoctorID:   slot.DoctorID,
		SlotDate:   slot.SlotDate.Format("2006-01-02"),
		StartTime:  slot.StartTime,
		EndTime:    slot.EndTime,
		TotalQuota: slot.TotalQuota,
		CreatedAt:  slot.CreatedAt,
		UpdatedAt:  slot.UpdatedAt,
	}

	if slot.Doctor.UserID != uuid.Nil {
		response.Doctor = DoctorToResponse(&slot.Doctor)
	}

	return response
}

// SlotsToResponses converts a slice of AvailabilitySlot entities to DTOs
func SlotsToResponses(slots []entity.AvailabilitySlot) []dto.SlotResponse {
	responses := make([]dto.SlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = *SlotToResponse(&slot)
	}
	return responses
}

// VideoSessionToResponse converts a VideoSession entity to its DTO
func VideoSessionToResponse(session *entity.VideoSession) *dto.VideoSessionResponse {
	if session == nil {
		return nil
	}

	display := session.Status.Display()
	response := &dto.VideoSessionResponse{
		ID:          session.ID,
		PatientID:   session.PatientID,
		DoctorID:    session.DoctorID,
		SlotID:      session.SlotID,
		Status:      string(session.Status),
		StatusLabel: display.Label,
		StatusIcon:  display.Icon,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
	}

	if session.Slot.ID != 0 {
		response.Slot = SlotToResponse(&session.Slot)
	}

	return response
}

// VideoSessionsToResponses converts a slice of VideoSession entities to DTOs
func VideoSessionsToResponses(sessions []entity.VideoSession) []dto.VideoSessionResponse {
	responses := make([]dto.VideoSessionResponse, len(sessions))
	for i, session := range sessions {
		responses[i] = *VideoSessionToResponse(&session)
	}
	return responses
}
