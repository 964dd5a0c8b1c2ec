package usecase

import (
	"testing"

	"telehealth-api/internal/domain/entity"

	"github.com/google/uuid"
)

func TestSubscriptionManagedBy(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	admin := uuid.New()
	subscription := &entity.Subscription{PatientID: owner}

	tests := []struct {
		name      string
		actorID   uuid.UUID
		actorRole entity.Role
		want      bool
	}{
		{"patient manages own subscription", owner, entity.RolePatient, true},
		{"patient cannot reach another patient's subscription", stranger, entity.RolePatient, false},
		{"admin manages any subscription", admin, entity.RoleAdmin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := subscriptionManagedBy(subscription, tt.actorID, tt.actorRole); got != tt.want {
				t.Errorf("subscriptionManagedBy() = %v, want %v", got, tt.want)
			}
		})
	}
}
