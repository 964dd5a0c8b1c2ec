package usecase

import (
	"context"
	"errors"

	"telehealth-api/internal/converter"
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/domain/repository"
	"telehealth-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPharmacyOrderNotFound = errors.New("pharmacy order not found")
	ErrPharmacyOrderTerminal = errors.New("pharmacy order is in a terminal status")
	ErrPrescriptionNotFound  = errors.New("prescription not found")
)

type PharmacyOrderUsecase interface {
	CreatePrescription(ctx context.Context, doctorID uuid.UUID, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	GetMyPrescriptions(ctx context.Context, patientID uuid.UUID) (*dto.PrescriptionListResponse, error)
	GetMyOrders(ctx context.Context, patientID uuid.UUID) (*dto.PharmacyOrderListResponse, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*dto.PharmacyOrderResponse, error)
	GetQueueByStatus(ctx context.Context, status string) (*dto.PharmacyOrderListResponse, error)
	UpdateOrderStatus(ctx context.Context, actorID, orderID uuid.UUID, req *dto.UpdateOrderStatusRequest) (*dto.PharmacyOrderResponse, error)
}

type pharmacyOrderUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	prescriptionRepo repository.PrescriptionRepository
	orderRepo        repository.PharmacyOrderRepository
	patientRepo      repository.PatientProfileRepository
	auditService     service.AuditService
}

func NewPharmacyOrderUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository,
	orderRepo repository.PharmacyOrderRepository,
	patientRepo repository.PatientProfileRepository,
	auditService service.AuditService,
) PharmacyOrderUsecase {
	return &pharmacyOrderUsecase{
		db:               db,
		log:              log,
		prescriptionRepo: prescriptionRepo,
		orderRepo:        orderRepo,
		patientRepo:      patientRepo,
		auditService:     auditService,
	}
}

// CreatePrescription writes the prescription and opens its pharmacy
// order in the same transaction. An order always exists for every
// prescription, even before the pharmacy sees it.
func (u *pharmacyOrderUsecase) CreatePrescription(ctx context.Context, doctorID uuid.UUID, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByUserID(tx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	prescription := &entity.Prescription{
		PatientID: req.PatientID,
		DoctorID:  doctorID,
		Vertical:  entity.Vertical(req.Vertical),
		Items:     converter.PrescriptionItemsToJSON(req.Items),
		Notes:     req.Notes,
	}

	if err := u.prescriptionRepo.Create(tx, prescription); err != nil {
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, err
	}

	order := &entity.PharmacyOrder{
		PatientID:      req.PatientID,
		PrescriptionID: prescription.ID,
		Vertical:       entity.Vertical(req.Vertical),
		Status:         entity.OrderStatusPrescriptionCreated,
	}

	if err := u.orderRepo.Create(tx, order); err != nil {
		u.log.Warnf("Failed to create pharmacy order: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAction(ctx, tx, &doctorID, entity.AuditActionPrescriptionCreate, entity.JSON{
		"prescription_id":   prescription.ID.String(),
		"pharmacy_order_id": order.ID.String(),
		"patient_id":        req.PatientID.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PrescriptionToResponse(prescription), nil
}

func (u *pharmacyOrderUsecase) GetMyPrescriptions(ctx context.Context, patientID uuid.UUID) (*dto.PrescriptionListResponse, error) {
	prescriptions, err := u.prescriptionRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list prescriptions: %+v", err)
		return nil, err
	}

	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(prescriptions),
		Total:         len(prescriptions),
	}, nil
}

func (u *pharmacyOrderUsecase) GetMyOrders(ctx context.Context, patientID uuid.UUID) (*dto.PharmacyOrderListResponse, error) {
	orders, err := u.orderRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list pharmacy orders: %+v", err)
		return nil, err
	}

	return &dto.PharmacyOrderListResponse{
		Orders: converter.PharmacyOrdersToResponses(orders),
		Total:  len(orders),
	}, nil
}

func (u *pharmacyOrderUsecase) GetOrder(ctx context.Context, id uuid.UUID) (*dto.PharmacyOrderResponse, error) {
	order, err := u.orderRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find pharmacy order: %+v", err)
		return nil, err
	}
	if order == nil {
		return nil, ErrPharmacyOrderNotFound
	}

	return converter.PharmacyOrderToResponse(order), nil
}

// GetQueueByStatus powers the pharmacy and delivery work queues.
func (u *pharmacyOrderUsecase) GetQueueByStatus(ctx context.Context, status string) (*dto.PharmacyOrderListResponse, error) {
	orderStatus := entity.OrderStatus(status)
	if !orderStatus.Valid() {
		return nil, ErrInvalidOrderStatus
	}

	orders, err := u.orderRepo.FindByStatus(u.db.WithContext(ctx), orderStatus)
	if err != nil {
		u.log.Warnf("Failed to list pharmacy orders by status: %+v", err)
		return nil, err
	}

	return &dto.PharmacyOrderListResponse{
		Orders: converter.PharmacyOrdersToResponses(orders),
		Total:  len(orders),
	}, nil
}

func (u *pharmacyOrderUsecase) UpdateOrderStatus(ctx context.Context, actorID, orderID uuid.UUID, req *dto.UpdateOrderStatusRequest) (*dto.PharmacyOrderResponse, error) {
	newStatus := entity.OrderStatus(req.Status)
	if !newStatus.Valid() {
		return nil, ErrInvalidOrderStatus
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	order, err := u.orderRepo.FindByID(tx, orderID)
	if err != nil {
		u.log.Warnf("Failed to find pharmacy order: %+v", err)
		return nil, err
	}
	if order == nil {
		return nil, ErrPharmacyOrderNotFound
	}
	oldStatus := order.Status

	rows, err := u.orderRepo.UpdateStatus(tx, orderID, newStatus)
	if err != nil {
		u.log.Warnf("Failed to update pharmacy order status: %+v", err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrPharmacyOrderTerminal
	}

	if req.Notes != "" {
		order.DeliveryNotes = req.Notes
		if err := tx.Model(&entity.PharmacyOrder{}).
			Where("id = ?", orderID).
			Update("delivery_notes", req.Notes).Error; err != nil {
			u.log.Warnf("Failed to update delivery notes: %+v", err)
			return nil, err
		}
	}

	if err := u.auditService.LogStatusChange(ctx, tx, &actorID, entity.AuditActionOrderStatus,
		"pharmacy_order", orderID.String(), string(oldStatus), string(newStatus)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	order.Status = newStatus
	return converter.PharmacyOrderToResponse(order), nil
}
