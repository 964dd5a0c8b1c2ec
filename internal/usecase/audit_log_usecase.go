package usecase

import (
	"context"

	"telehealth-api/internal/converter"
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditLogUsecase interface {
	List(ctx context.Context) (*dto.AuditLogListResponse, error)
}

type auditLogUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditLogUsecase {
	return &auditLogUsecase{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

func (u *auditLogUsecase) List(ctx context.Context) (*dto.AuditLogListResponse, error) {
	logs, err := u.auditRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}
