package repository

import (
	"errors"

	"telehealth-api/internal/domain/entity"
	domainRepo "telehealth-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type prescriptionRepository struct{}

func NewPrescriptionRepository() domainRepo.PrescriptionRepository {
	return &prescriptionRepository{}
}

func (r *prescriptionRepository) Create(db *gorm.DB, prescription *entity.Prescription) error {
	return db.Create(prescription).Error
}

func (r *prescriptionRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := db.Preload("Doctor.User").Where("id = ?", id).First(&prescription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}

func (r *prescriptionRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	err := db.Preload("Doctor.User").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}

type pharmacyOrderRepository struct{}

func NewPharmacyOrderRepository() domainRepo.PharmacyOrderRepository {
	return &pharmacyOrderRepository{}
}

func (r *pharmacyOrderRepository) Create(db *gorm.DB, order *entity.PharmacyOrder) error {
	return db.Create(order).Error
}

func (r *pharmacyOrderRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.PharmacyOrder, error) {
	var order entity.PharmacyOrder
	err := db.Preload("Prescription").Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *pharmacyOrderRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.PharmacyOrder, error) {
	var orders []entity.PharmacyOrder
	err := db.Preload("Prescription").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *pharmacyOrderRepository) FindByStatus(db *gorm.DB, status entity.OrderStatus) ([]entity.PharmacyOrder, error) {
	var orders []entity.PharmacyOrder
	err := db.Preload("Prescription").
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus atomically moves an order to the given status, skipping
// orders already delivered or cancelled. Returns affected rows.
func (r *pharmacyOrderRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.OrderStatus) (int64, error) {
	result := db.Model(&entity.PharmacyOrder{}).
		Where("id = ? AND status NOT IN ?", id, []entity.OrderStatus{
			entity.OrderStatusDelivered,
			entity.OrderStatusCancelled,
		}).
		Update("status", status)
	return result.RowsAffected, result.Error
}
