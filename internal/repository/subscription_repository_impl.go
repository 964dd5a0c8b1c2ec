package repository

import (
	"errors"

	"telehealth-api/internal/domain/entity"
	domainRepo "telehealth-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type planRepository struct{}

func NewPlanRepository() domainRepo.PlanRepository {
	return &planRepository{}
}

func (r *planRepository) Create(db *gorm.DB, plan *entity.Plan) error {
	return db.Create(plan).Error
}

func (r *planRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Plan, error) {
	var plan entity.Plan
	err := db.Where("id = ?", id).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) FindByVertical(db *gorm.DB, vertical entity.Vertical) ([]entity.Plan, error) {
	var plans []entity.Plan
	err := db.Where("vertical = ?", vertical).Order("monthly_price ASC").Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *planRepository) FindAll(db *gorm.DB) ([]entity.Plan, error) {
	var plans []entity.Plan
	err := db.Order("vertical ASC, monthly_price ASC").Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

type subscriptionRepository struct{}

func NewSubscriptionRepository() domainRepo.SubscriptionRepository {
	return &subscriptionRepository{}
}

func (r *subscriptionRepository) Create(db *gorm.DB, subscription *entity.Subscription) error {
	return db.Create(subscription).Error
}

func (r *subscriptionRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Subscription, error) {
	var subscription entity.Subscription
	err := db.Preload("Plan").Where("id = ?", id).First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subscription, nil
}

func (r *subscriptionRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Subscription, error) {
	var subscriptions []entity.Subscription
	err := db.Preload("Plan").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&subscriptions).Error
	if err != nil {
		return nil, err
	}
	return subscriptions, nil
}

func (r *subscriptionRepository) FindActiveByPatientAndPlan(db *gorm.DB, patientID, planID uuid.UUID) (*entity.Subscription, error) {
	var subscription entity.Subscription
	err := db.Where("patient_id = ? AND plan_id = ? AND status = ?", patientID, planID, entity.SubscriptionStatusActive).
		First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subscription, nil
}

// UpdateStatus atomically moves a subscription to the given status,
// skipping subscriptions already cancelled or expired.
func (r *subscriptionRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.SubscriptionStatus) (int64, error) {
	result := db.Model(&entity.Subscription{}).
		Where("id = ? AND status NOT IN ?", id, []entity.SubscriptionStatus{
			entity.SubscriptionStatusCancelled,
			entity.SubscriptionStatusExpired,
		}).
		Update("status", status)
	return result.RowsAffected, result.Error
}
