package service

import (
	"context"

	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditService interface {
	LogAction(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, metadata entity.JSON) error
	LogStatusChange(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID, oldStatus, newStatus string) error
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogAction records a privileged action with free-form metadata.
func (s *auditService) LogAction(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}

// LogStatusChange records a lifecycle transition on a tracked entity.
func (s *auditService) LogStatusChange(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID, oldStatus, newStatus string) error {
	metadata := entity.JSON{
		"entity":     entityName,
		"entity_id":  entityID,
		"old_status": oldStatus,
		"new_status": newStatus,
	}

	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
