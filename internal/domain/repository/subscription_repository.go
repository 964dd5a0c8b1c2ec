package repository

import (
	"telehealth-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlanRepository interface {
	Create(db *gorm.DB, plan *entity.Plan) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Plan, error)
	FindByVertical(db *gorm.DB, vertical entity.Vertical) ([]entity.Plan, error)
	FindAll(db *gorm.DB) ([]entity.Plan, error)
}

type SubscriptionRepository interface {
	Create(db *gorm.DB, subscription *entity.Subscription) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Subscription, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Subscription, error)
	FindActiveByPatientAndPlan(db *gorm.DB, patientID, planID uuid.UUID) (*entity.Subscription, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.SubscriptionStatus) (int64, error)
}
