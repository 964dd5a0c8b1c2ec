package usecase

import (
	"testing"

	"telehealth-api/internal/domain/entity"
)

func TestLabStatusAllowedForRole(t *testing.T) {
	tests := []struct {
		name   string
		role   entity.Role
		status entity.LabOrderStatus
		want   bool
	}{
		{"doctor records review", entity.RoleDoctor, entity.LabOrderStatusDoctorReviewed, true},
		{"doctor cannot move samples", entity.RoleDoctor, entity.LabOrderStatusProcessing, false},
		{"doctor cannot close orders", entity.RoleDoctor, entity.LabOrderStatusClosed, false},
		{"lab runs processing", entity.RoleLab, entity.LabOrderStatusProcessing, true},
		{"phlebotomist reports collection", entity.RolePhlebotomist, entity.LabOrderStatusSampleCollected, true},
		{"admin closes orders", entity.RoleAdmin, entity.LabOrderStatusClosed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := labStatusAllowedForRole(tt.role, tt.status); got != tt.want {
				t.Errorf("labStatusAllowedForRole(%s, %s) = %v, want %v", tt.role, tt.status, got, tt.want)
			}
		})
	}
}
