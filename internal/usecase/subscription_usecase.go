package usecase

import (
	"context"
	"errors"
	"time"

	"telehealth-api/internal/converter"
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/domain/repository"
	"telehealth-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPlanNotFound          = errors.New("plan not found")
	ErrSubscriptionNotFound  = errors.New("subscription not found")
	ErrAlreadySubscribed     = errors.New("an active subscription to this plan already exists")
	ErrSubscriptionTerminal  = errors.New("subscription is in a terminal status")
	ErrInvalidVertical       = errors.New("invalid vertical")
)

type SubscriptionUsecase interface {
	CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error)
	ListPlans(ctx context.Context, vertical string) (*dto.PlanListResponse, error)
	Subscribe(ctx context.Context, patientID uuid.UUID, req *dto.SubscribeRequest) (*dto.SubscriptionResponse, error)
	GetMySubscriptions(ctx context.Context, patientID uuid.UUID) (*dto.SubscriptionListResponse, error)
	UpdateStatus(ctx context.Context, actorID uuid.UUID, actorRole entity.Role, subscriptionID uuid.UUID, req *dto.UpdateSubscriptionStatusRequest) (*dto.SubscriptionResponse, error)
}

// subscriptionManagedBy reports whether the actor may change the
// subscription. Patients only reach their own rows; admins reach any.
func subscriptionManagedBy(subscription *entity.Subscription, actorID uuid.UUID, actorRole entity.Role) bool {
	if actorRole == entity.RolePatient {
		return subscription.PatientID == actorID
	}
	return true
}

type subscriptionUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	planRepo         repository.PlanRepository
	subscriptionRepo repository.SubscriptionRepository
	auditService     service.AuditService
}

func NewSubscriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	planRepo repository.PlanRepository,
	subscriptionRepo repository.SubscriptionRepository,
	auditService service.AuditService,
) SubscriptionUsecase {
	return &subscriptionUsecase{
		db:               db,
		log:              log,
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		auditService:     auditService,
	}
}

func (u *subscriptionUsecase) CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	plan := &entity.Plan{
		Name:         req.Name,
		Vertical:     entity.Vertical(req.Vertical),
		Description:  req.Description,
		MonthlyPrice: req.MonthlyPrice,
		DurationDays: req.DurationDays,
	}

	if err := u.planRepo.Create(u.db.WithContext(ctx), plan); err != nil {
		u.log.Warnf("Failed to create plan: %+v", err)
		return nil, err
	}

	return converter.PlanToResponse(plan), nil
}

func (u *subscriptionUsecase) ListPlans(ctx context.Context, vertical string) (*dto.PlanListResponse, error) {
	var (
		plans []entity.Plan
		err   error
	)

	if vertical != "" {
		v := entity.Vertical(vertical)
		if !v.Valid() {
			return nil, ErrInvalidVertical
		}
		plans, err = u.planRepo.FindByVertical(u.db.WithContext(ctx), v)
	} else {
		plans, err = u.planRepo.FindAll(u.db.WithContext(ctx))
	}
	if err != nil {
		u.log.Warnf("Failed to list plans: %+v", err)
		return nil, err
	}

	return &dto.PlanListResponse{
		Plans: converter.PlansToResponses(plans),
		Total: len(plans),
	}, nil
}

func (u *subscriptionUsecase) Subscribe(ctx context.Context, patientID uuid.UUID, req *dto.SubscribeRequest) (*dto.SubscriptionResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	plan, err := u.planRepo.FindByID(tx, req.PlanID)
	if err != nil {
		u.log.Warnf("Failed to find plan: %+v", err)
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	existing, err := u.subscriptionRepo.FindActiveByPatientAndPlan(tx, patientID, req.PlanID)
	if err != nil {
		u.log.Warnf("Failed to check existing subscription: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadySubscribed
	}

	now := time.Now()
	subscription := &entity.Subscription{
		PatientID: patientID,
		PlanID:    req.PlanID,
		Status:    entity.SubscriptionStatusActive,
		StartedAt: now,
		ExpiresAt: now.AddDate(0, 0, plan.DurationDays),
	}

	if err := u.subscriptionRepo.Create(tx, subscription); err != nil {
		if isForeignKeyError(err, "patient") {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to create subscription: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAction(ctx, tx, &patientID, entity.AuditActionSubscriptionCreate, entity.JSON{
		"subscription_id": subscription.ID.String(),
		"plan_id":         req.PlanID.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	subscription.Plan = *plan
	return converter.SubscriptionToResponse(subscription), nil
}

func (u *subscriptionUsecase) GetMySubscriptions(ctx context.Context, patientID uuid.UUID) (*dto.SubscriptionListResponse, error) {
	subscriptions, err := u.subscriptionRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list subscriptions: %+v", err)
		return nil, err
	}

	return &dto.SubscriptionListResponse{
		Subscriptions: converter.SubscriptionsToResponses(subscriptions),
		Total:         len(subscriptions),
	}, nil
}

func (u *subscriptionUsecase) UpdateStatus(ctx context.Context, actorID uuid.UUID, actorRole entity.Role, subscriptionID uuid.UUID, req *dto.UpdateSubscriptionStatusRequest) (*dto.SubscriptionResponse, error) {
	newStatus := entity.SubscriptionStatus(req.Status)
	if !newStatus.Valid() {
		return nil, ErrInvalidOrderStatus
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	subscription, err := u.subscriptionRepo.FindByID(tx, subscriptionID)
	if err != nil {
		u.log.Warnf("Failed to find subscription: %+v", err)
		return nil, err
	}
	if subscription == nil {
		return nil, ErrSubscriptionNotFound
	}
	// Reported as not found rather than forbidden so foreign IDs leak
	// nothing about other patients
	if !subscriptionManagedBy(subscription, actorID, actorRole) {
		return nil, ErrSubscriptionNotFound
	}
	oldStatus := subscription.Status

	rows, err := u.subscriptionRepo.UpdateStatus(tx, subscriptionID, newStatus)
	if err != nil {
		u.log.Warnf("Failed to update subscription status: %+v", err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrSubscriptionTerminal
	}

	if err := u.auditService.LogStatusChange(ctx, tx, &actorID, entity.AuditActionSubscriptionStatus,
		"subscription", subscriptionID.String(), string(oldStatus), string(newStatus)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	subscription.Status = newStatus
	return converter.SubscriptionToResponse(subscription), nil
}
