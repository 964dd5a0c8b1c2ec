package converter

import (
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"

	"github.com/google/uuid"
)

// PlanToResponse converts a Plan entity to PlanResponse DTO
func PlanToResponse(plan *entity.Plan) *dto.PlanResponse {
	if plan == nil {
		return nil
	}

	return &dto.PlanResponse{
		ID:           plan.ID,
		Name:         plan.Name,
		Vertical:     string(plan.Vertical),
		Description:  plan.Description,
		MonthlyPrice: plan.MonthlyPrice,
		DurationDays: plan.DurationDays,
	}
}

// PlansToResponses converts a slice of Plan entities to DTOs
func PlansToResponses(plans []entity.Plan) []dto.PlanResponse {
	responses := make([]dto.PlanResponse, len(plans))
	for i, plan := range plans {
		responses[i] = *PlanToResponse(&plan)
	}
	return responses
}

// SubscriptionToResponse converts a Subscription entity to its DTO
func SubscriptionToResponse(subscription *entity.Subscription) *dto.SubscriptionResponse {
	if subscription == nil {
		return nil
	}

	display := subscription.Status.Display()
	response := &dto.SubscriptionResponse{
		ID:          subscription.ID,
		PatientID:   subscription.PatientID,
		PlanID:      subscription.PlanID,
		Status:      string(subscription.Status),
		StatusLabel: display.Label,
		StatusIcon:  display.Icon,
		StartedAt:   subscription.StartedAt,
		ExpiresAt:   subscription.ExpiresAt,
		CreatedAt:   subscription.CreatedAt,
	}

	if subscription.Plan.ID != uuid.Nil {
		response.Plan = PlanToResponse(&subscription.Plan)
	}

	return response
}

// SubscriptionsToResponses converts a slice of Subscription entities to DTOs
func SubscriptionsToResponses(subscriptions []entity.Subscription) []dto.SubscriptionResponse {
	responses := make([]dto.SubscriptionResponse, len(subscriptions))
	for i, subscription := range subscriptions {
		responses[i] = *SubscriptionToResponse(&subscription)
	}
	return responses
}
