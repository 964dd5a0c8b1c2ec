package converter

import (
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
)

// PrescriptionToResponse converts a Prescription entity to its DTO
func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	response := &dto.PrescriptionResponse{
		ID:        prescription.ID,
		PatientID: prescription.PatientID,
		DoctorID:  prescription.DoctorID,
		Vertical:  string(prescription.Vertical),
		Items:     prescriptionItemsFromJSON(prescription.Items),
		Notes:     prescription.Notes,
		CreatedAt: prescription.CreatedAt,
	}

	if prescription.Doctor.User.FullName != "" {
		response.DoctorName = prescription.Doctor.User.FullName
	}

	return response
}

// prescriptionItemsFromJSON unpacks the JSONB items column back into the
// typed DTO shape.
func prescriptionItemsFromJSON(items entity.JSON) []dto.PrescriptionItem {
	raw, ok := items["items"].([]interface{})
	if !ok {
		return nil
	}

	result := make([]dto.PrescriptionItem, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		item := dto.PrescriptionItem{}
		if v, ok := m["medication"].(string); ok {
			item.Medication = v
		}
		if v, ok := m["dosage"].(string); ok {
			item.Dosage = v
		}
		if v, ok := m["frequency"].(string); ok {
			item.Frequency = v
		}
		if v, ok := m["duration"].(string); ok {
			item.Duration = v
		}
		result = append(result, item)
	}
	return result
}

// PrescriptionItemsToJSON packs typed prescription items into the JSONB
// column shape.
func PrescriptionItemsToJSON(items []dto.PrescriptionItem) entity.JSON {
	raw := make([]interface{}, len(items))
	for i, item := range items {
		raw[i] = map[string]interface{}{
			"medication": item.Medication,
			"dosage":     item.Dosage,
			"frequency":  item.Frequency,
			"duration":   item.Duration,
		}
	}
	return entity.JSON{"items": raw}
}

// PrescriptionsToResponses converts a slice of Prescription entities to DTOs
func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i, prescription := range prescriptions {
		responses[i] = *PrescriptionToResponse(&prescription)
	}
	return responses
}

// PharmacyOrderToResponse converts a PharmacyOrder entity to its DTO
func PharmacyOrderToResponse(order *entity.PharmacyOrder) *dto.PharmacyOrderResponse {
	if order == nil {
		return nil
	}

	display := order.Status.Display()
	return &dto.PharmacyOrderResponse{
		ID:             order.ID,
		PatientID:      order.PatientID,
		PrescriptionID: order.PrescriptionID,
		Vertical:       string(order.Vertical),
		Status:         string(order.Status),
		StatusLabel:    display.Label,
		StatusIcon:     display.Icon,
		DeliveryNotes:  order.DeliveryNotes,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}

// PharmacyOrdersToResponses converts a slice of PharmacyOrder entities to DTOs
func PharmacyOrdersToResponses(orders []entity.PharmacyOrder) []dto.PharmacyOrderResponse {
	responses := make([]dto.PharmacyOrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = *PharmacyOrderToResponse(&order)
	}
	return responses
}
