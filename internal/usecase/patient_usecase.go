package usecase

import (
	"context"
	"errors"

	"telehealth-api/internal/converter"
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("patient profile not found")

type PatientUsecase interface {
	GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.PatientProfileResponse, error)
	UpdateMyProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdatePatientProfileRequest) (*dto.PatientProfileResponse, error)
}

type patientUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	patientRepo repository.PatientProfileRepository
	userRepo    repository.UserRepository
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientProfileRepository,
	userRepo repository.UserRepository,
) PatientUsecase {
	return &patientUsecase{
		db:          db,
		log:         log,
		patientRepo: patientRepo,
		userRepo:    userRepo,
	}
}

func (u *patientUsecase) GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.PatientProfileResponse, error) {
	profile, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	return converter.PatientProfileToResponse(profile), nil
}

func (u *patientUsecase) UpdateMyProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdatePatientProfileRequest) (*dto.PatientProfileResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.patientRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	if req.FullName != "" {
		profile.User.FullName = req.FullName
		if err := u.userRepo.Update(tx, &profile.User); err != nil {
			u.log.Warnf("Failed to update user: %+v", err)
			return nil, err
		}
	}
	if req.PhoneNumber != "" {
		profile.PhoneNumber = req.PhoneNumber
	}
	if req.Address != "" {
		profile.Address = req.Address
	}

	if err := u.patientRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update patient profile: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientProfileToResponse(profile), nil
}
