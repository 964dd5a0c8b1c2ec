package repository

import (
	"time"

	"telehealth-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LabOrderRepository interface {
	Create(db *gorm.DB, order *entity.LabOrder) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.LabOrder, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.LabOrder, error)
	FindOpen(db *gorm.DB) ([]entity.LabOrder, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.LabOrderStatus) (int64, error)
	AssignPhlebotomist(db *gorm.DB, id uuid.UUID, phlebotomistID uuid.UUID) (int64, error)
}

type BookedSlotRepository interface {
	Create(db *gorm.DB, slot *entity.BookedSlot) error
	FindByLabOrderID(db *gorm.DB, labOrderID uuid.UUID) (*entity.BookedSlot, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.BookedSlotStatus) (int64, error)
	Cancel(db *gorm.DB, id uuid.UUID) (int64, error)
	Rebook(db *gorm.DB, id uuid.UUID, startAt, endAt time.Time) (int64, error)
}
