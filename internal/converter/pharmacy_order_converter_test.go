package converter

import (
	"testing"

	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"

	"github.com/google/uuid"
)

func TestPrescriptionItemsJSONRoundTrip(t *testing.T) {
	items := []dto.PrescriptionItem{
		{Medication: "Metformin 500mg", Dosage: "1 tablet", Frequency: "twice daily", Duration: "30 days"},
		{Medication: "Atorvastatin 10mg", Dosage: "1 tablet", Frequency: "at night", Duration: "30 days"},
	}

	packed := PrescriptionItemsToJSON(items)
	unpacked := prescriptionItemsFromJSON(packed)

	if len(unpacked) != len(items) {
		t.Fatalf("expected %d items, got %d", len(items), len(unpacked))
	}
	for i, item := range items {
		if unpacked[i] != item {
			t.Errorf("item %d: expected %+v, got %+v", i, item, unpacked[i])
		}
	}
}

func TestPrescriptionItemsFromJSONMalformed(t *testing.T) {
	if got := prescriptionItemsFromJSON(entity.JSON{"items": "not-a-list"}); got != nil {
		t.Errorf("expected nil for malformed payload, got %+v", got)
	}
	if got := prescriptionItemsFromJSON(entity.JSON{}); got != nil {
		t.Errorf("expected nil for missing key, got %+v", got)
	}
}

func TestPharmacyOrderToResponseStatusDisplay(t *testing.T) {
	order := &entity.PharmacyOrder{
		ID:             uuid.New(),
		PatientID:      uuid.New(),
		PrescriptionID: uuid.New(),
		Vertical:       entity.VerticalWeightManagement,
		Status:         entity.OrderStatusOutForDelivery,
	}

	response := PharmacyOrderToResponse(order)
	if response.Status != string(entity.OrderStatusOutForDelivery) {
		t.Errorf("unexpected status %q", response.Status)
	}
	if response.StatusLabel == "" || response.StatusLabel == "Unknown" {
		t.Errorf("expected mapped status label, got %q", response.StatusLabel)
	}
}

func TestPharmacyOrderToResponseNil(t *testing.T) {
	if PharmacyOrderToResponse(nil) != nil {
		t.Error("expected nil response for nil order")
	}
}
