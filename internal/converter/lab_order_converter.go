package converter

import (
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
)

// BookedSlotToResponse converts a BookedSlot entity to its DTO
func BookedSlotToResponse(slot *entity.BookedSlot) *dto.BookedSlotResponse {
	if slot == nil {
		return nil
	}

	display := slot.Status.Display()
	return &dto.BookedSlotResponse{
		ID:          slot.ID,
		StartAt:     slot.StartAt,
		EndAt:       slot.EndAt,
		Status:      string(slot.Status),
		StatusLabel: display.Label,
		StatusIcon:  display.Icon,
	}
}

// LabOrderToResponse converts a LabOrder entity to LabOrderResponse DTO
func LabOrderToResponse(order *entity.LabOrder) *dto.LabOrderResponse {
	if order == nil {
		return nil
	}

	display := order.Status.Display()
	response := &dto.LabOrderResponse{
		ID:             order.ID,
		PatientID:      order.PatientID,
		PhlebotomistID: order.PhlebotomistID,
		Vertical:       string(order.Vertical),
		PanelName:      order.PanelName,
		Status:         string(order.Status),
		StatusLabel:    display.Label,
		StatusIcon:     display.Icon,
		Notes:          order.Notes,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}

	if order.Slot != nil {
		response.Slot = BookedSlotToResponse(order.Slot)
	}

	return response
}

// LabOrdersToResponses converts a slice of LabOrder entities to DTOs
func LabOrdersToResponses(orders []entity.LabOrder) []dto.LabOrderResponse {
	responses := make([]dto.LabOrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = *LabOrderToResponse(&order)
	}
	return responses
}
