package repository

import (
	"telehealth-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientProfileRepository interface {
	Create(db *gorm.DB, profile *entity.PatientProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error)
	Update(db *gorm.DB, profile *entity.PatientProfile) error
}

type DoctorProfileRepository interface {
	Create(db *gorm.DB, profile *entity.DoctorProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
	FindAll(db *gorm.DB) ([]entity.DoctorProfile, error)
	Update(db *gorm.DB, profile *entity.DoctorProfile) error
}
