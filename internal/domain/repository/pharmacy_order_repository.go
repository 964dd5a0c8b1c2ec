package repository

import (
	"telehealth-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	Create(db *gorm.DB, prescription *entity.Prescription) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Prescription, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Prescription, error)
}

type PharmacyOrderRepository interface {
	Create(db *gorm.DB, order *entity.PharmacyOrder) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.PharmacyOrder, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.PharmacyOrder, error)
	FindByStatus(db *gorm.DB, status entity.OrderStatus) ([]entity.PharmacyOrder, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.OrderStatus) (int64, error)
}
