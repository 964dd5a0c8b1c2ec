package repository

import (
	"errors"
	"time"

	"telehealth-api/internal/domain/entity"
	domainRepo "telehealth-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type labOrderRepository struct{}

func NewLabOrderRepository() domainRepo.LabOrderRepository {
	return &labOrderRepository{}
}

func (r *labOrderRepository) Create(db *gorm.DB, order *entity.LabOrder) error {
	return db.Create(order).Error
}

func (r *labOrderRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.LabOrder, error) {
	var order entity.LabOrder
	err := db.Preload("Patient.User").Preload("Slot").Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *labOrderRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.LabOrder, error) {
	var orders []entity.LabOrder
	err := db.Preload("Slot").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// FindOpen returns orders that have not reached a terminal status, oldest
// first, for the escalation board.
func (r *labOrderRepository) FindOpen(db *gorm.DB) ([]entity.LabOrder, error) {
	var orders []entity.LabOrder
	err := db.Preload("Patient.User").Preload("Slot").
		Where("status NOT IN ?", []entity.LabOrderStatus{
			entity.LabOrderStatusCancelled,
			entity.LabOrderStatusExpired,
			entity.LabOrderStatusClosed,
		}).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus atomically moves an order to the given status, skipping
// orders already in a terminal state. Returns affected rows: 1 = success,
// 0 = not found or already terminal (prevents races on concurrent updates).
func (r *labOrderRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.LabOrderStatus) (int64, error) {
	result := db.Model(&entity.LabOrder{}).
		Where("id = ? AND status NOT IN ?", id, []entity.LabOrderStatus{
			entity.LabOrderStatusCancelled,
			entity.LabOrderStatusExpired,
			entity.LabOrderStatusClosed,
		}).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *labOrderRepository) AssignPhlebotomist(db *gorm.DB, id uuid.UUID, phlebotomistID uuid.UUID) (int64, error) {
	result := db.Model(&entity.LabOrder{}).
		Where("id = ? AND status IN ?", id, []entity.LabOrderStatus{
			entity.LabOrderStatusSlotBooked,
			entity.LabOrderStatusPhlebotomistAssigned,
		}).
		Updates(map[string]interface{}{
			"phlebotomist_id": phlebotomistID,
			"status":          entity.LabOrderStatusPhlebotomistAssigned,
		})
	return result.RowsAffected, result.Error
}

type bookedSlotRepository struct{}

func NewBookedSlotRepository() domainRepo.BookedSlotRepository {
	return &bookedSlotRepository{}
}

func (r *bookedSlotRepository) Create(db *gorm.DB, slot *entity.BookedSlot) error {
	return db.Create(slot).Error
}

func (r *bookedSlotRepository) FindByLabOrderID(db *gorm.DB, labOrderID uuid.UUID) (*entity.BookedSlot, error) {
	var slot entity.BookedSlot
	err := db.Where("lab_order_id = ?", labOrderID).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *bookedSlotRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.BookedSlotStatus) (int64, error) {
	result := db.Model(&entity.BookedSlot{}).
		Where("id = ? AND status = ?", id, entity.BookedSlotStatusBooked).
		Update("status", status)
	return result.RowsAffected, result.Error
}

// Cancel atomically cancels a slot ONLY if it is still booked.
// Returns affected rows: 1 = success, 0 = already resolved.
func (r *bookedSlotRepository) Cancel(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.BookedSlot{}).
		Where("id = ? AND status = ?", id, entity.BookedSlotStatusBooked).
		Update("status", entity.BookedSlotStatusCancelled)
	return result.RowsAffected, result.Error
}

// Rebook reactivates a resolved slot with a new collection window. The
// table keeps one row per order, so cancelled and missed slots are
// reused in place instead of inserting a second row. Guarded against
// still-booked slots: 0 rows means the slot was not rebookable.
func (r *bookedSlotRepository) Rebook(db *gorm.DB, id uuid.UUID, startAt, endAt time.Time) (int64, error) {
	result := db.Model(&entity.BookedSlot{}).
		Where("id = ? AND status <> ?", id, entity.BookedSlotStatusBooked).
		Updates(map[string]interface{}{
			"start_at": startAt,
			"end_at":   endAt,
			"status":   entity.BookedSlotStatusBooked,
		})
	return result.RowsAffected, result.Error
}
