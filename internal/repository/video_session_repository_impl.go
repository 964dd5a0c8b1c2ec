package repository

import (
	"errors"

	"telehealth-api/internal/domain/entity"
	domainRepo "telehealth-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type availabilitySlotRepository struct{}

func NewAvailabilitySlotRepository() domainRepo.AvailabilitySlotRepository {
	return &availabilitySlotRepository{}
}

func (r *availabilitySlotRepository) Create(db *gorm.DB, slot *entity.AvailabilitySlot) error {
	return db.Create(slot).Error
}

func (r *availabilitySlotRepository) FindByID(db *gorm.DB, id int) (*entity.AvailabilitySlot, error) {
	var slot entity.AvailabilitySlot
	err := db.Preload("Doctor.User").Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *availabilitySlotRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilitySlot, error) {
	var slots []entity.AvailabilitySlot
	err := db.Where("doctor_id = ?", doctorID).Order("slot_date ASC, start_time ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// FindAllWithActiveDoctor returns slots only for doctors whose user
// account is active. Supports optional filters: date range, doctor name,
// and specialization.
func (r *availabilitySlotRepository) FindAllWithActiveDoctor(db *gorm.DB, filter *entity.SlotFilter) ([]entity.AvailabilitySlot, error) {
	var slots []entity.AvailabilitySlot
	query := db.
		Joins("JOIN doctor_profiles ON doctor_profiles.user_id = availability_slots.doctor_id").
		Joins("JOIN users ON users.id = doctor_profiles.user_id").
		Where("users.is_active = ?", true)

	if filter != nil {
		if filter.StartAt != "" {
			query = query.Where("availability_slots.slot_date >= ?", filter.StartAt)
		}
		if filter.EndAt != "" {
			query = query.Where("availability_slots.slot_date <= ?", filter.EndAt)
		}
		if filter.DoctorName != "" {
			query = query.Where("users.full_name ILIKE ?", "%"+filter.DoctorName+"%")
		}
		if filter.Specialization != "" {
			query = query.Where("doctor_profiles.specialization ILIKE ?", "%"+filter.Specialization+"%")
		}
	}

	err := query.
		Preload("Doctor").Preload("Doctor.User").
		Order("slot_date ASC, start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *availabilitySlotRepository) Update(db *gorm.DB, slot *entity.AvailabilitySlot) error {
	return db.Omit("Doctor").Save(slot).Error
}

func (r *availabilitySlotRepository) Delete(db *gorm.DB, id int) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.AvailabilitySlot{})
	return affected.RowsAffected, affected.Error
}

type videoSessionRepository struct{}

func NewVideoSessionRepository() domainRepo.VideoSessionRepository {
	return &videoSessionRepository{}
}

func (r *videoSessionRepository) Create(db *gorm.DB, session *entity.VideoSession) error {
	return db.Create(session).Error
}

func (r *videoSessionRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.VideoSession, error) {
	var session entity.VideoSession
	err := db.Preload("Slot.Doctor.User").Where("id = ?", id).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *videoSessionRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.VideoSession, error) {
	var sessions []entity.VideoSession
	err := db.Preload("Slot.Doctor.User").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *videoSessionRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.VideoSession, error) {
	var sessions []entity.VideoSession
	err := db.Preload("Patient.User").Preload("Slot").
		Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *videoSessionRepository) FindByPatientAndSlot(db *gorm.DB, patientID uuid.UUID, slotID int) (*entity.VideoSession, error) {
	var session entity.VideoSession
	err := db.Where("patient_id = ? AND slot_id = ? AND status NOT IN ?", patientID, slotID, []entity.VideoSessionStatus{
		entity.VideoSessionStatusCancelled,
	}).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// UpdateStatus atomically moves a session to the given status, skipping
// sessions already completed or cancelled.
func (r *videoSessionRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.VideoSessionStatus) (int64, error) {
	result := db.Model(&entity.VideoSession{}).
		Where("id = ? AND status NOT IN ?", id, []entity.VideoSessionStatus{
			entity.VideoSessionStatusCompleted,
			entity.VideoSessionStatusCancelled,
		}).
		Update("status", status)
	return result.RowsAffected, result.Error
}
