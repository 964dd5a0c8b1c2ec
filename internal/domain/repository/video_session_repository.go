package repository

import (
	"telehealth-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilitySlotRepository interface {
	Create(db *gorm.DB, slot *entity.AvailabilitySlot) error
	FindByID(db *gorm.DB, id int) (*entity.AvailabilitySlot, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilitySlot, error)
	FindAllWithActiveDoctor(db *gorm.DB, filter *entity.SlotFilter) ([]entity.AvailabilitySlot, error)
	Update(db *gorm.DB, slot *entity.AvailabilitySlot) error
	Delete(db *gorm.DB, id int) (int64, error)
}

type VideoSessionRepository interface {
	Create(db *gorm.DB, session *entity.VideoSession) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.VideoSession, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.VideoSession, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.VideoSession, error)
	FindByPatientAndSlot(db *gorm.DB, patientID uuid.UUID, slotID int) (*entity.VideoSession, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.VideoSessionStatus) (int64, error)
}
