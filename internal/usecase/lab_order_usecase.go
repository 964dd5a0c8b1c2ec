package usecase

import (
	"context"
	"errors"
	"time"

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
	ErrLabOrderNotFound    = errors.New("lab order not found")
	ErrLabOrderTerminal    = errors.New("lab order is in a terminal status")
	ErrInvalidOrderStatus  = errors.New("invalid status value")
	ErrSlotAlreadyBooked   = errors.New("a collection slot is already booked for this order")
	ErrSlotNotBooked       = errors.New("no bookable slot found for this order")
	ErrInvalidSlotWindow   = errors.New("slot end must be after slot start")
	ErrAssignNotAllowed    = errors.New("order is not awaiting phlebotomist assignment")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrPhlebotomistInvalid = errors.New("assignee is not a phlebotomist")
	ErrStatusNotAllowed    = errors.New("status change not allowed for this role")
)

// Lab orders carry a collection deadline used by the escalation board.
// Orders that sit uncollected past it show up as breached.
const labOrderSLADays = 7

type LabOrderUsecase interface {
	CreateOrder(ctx context.Context, doctorID uuid.UUID, req *dto.CreateLabOrderRequest) (*dto.LabOrderResponse, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*dto.LabOrderResponse, error)
	GetMyOrders(ctx context.Context, patientID uuid.UUID) (*dto.LabOrderListResponse, error)
	BookCollectionSlot(ctx context.Context, patientID, orderID uuid.UUID, req *dto.BookCollectionSlotRequest) (*dto.LabOrderResponse, error)
	CancelCollectionSlot(ctx context.Context, patientID, orderID uuid.UUID) (*dto.LabOrderResponse, error)
	AssignPhlebotomist(ctx context.Context, actorID, orderID uuid.UUID, req *dto.AssignPhlebotomistRequest) (*dto.LabOrderResponse, error)
	UpdateStatus(ctx context.Context, actorID uuid.UUID, actorRole entity.Role, orderID uuid.UUID, req *dto.UpdateLabOrderStatusRequest) (*dto.LabOrderResponse, error)
	EscalationBoard(ctx context.Context) (*dto.EscalationBoardResponse, error)
}

// labStatusAllowedForRole gates status values by the acting role. Doctors
// only record their review of the results; lab, phlebotomist, and admin
// staff run the rest of the pipeline.
func labStatusAllowedForRole(role entity.Role, status entity.LabOrderStatus) bool {
	if role == entity.RoleDoctor {
		return status == entity.LabOrderStatusDoctorReviewed
	}
	return true
}

type labOrderUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	labOrderRepo    repository.LabOrderRepository
	bookedSlotRepo  repository.BookedSlotRepository
	patientRepo     repository.PatientProfileRepository
	userRepo        repository.UserRepository
	auditService    service.AuditService
	slaClassifier   *service.SLAClassifier
}

func NewLabOrderUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	labOrderRepo repository.LabOrderRepository,
	bookedSlotRepo repository.BookedSlotRepository,
	patientRepo repository.PatientProfileRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
	slaClassifier *service.SLAClassifier,
) LabOrderUsecase {
	return &labOrderUsecase{
		db:             db,
		log:            log,
		labOrderRepo:   labOrderRepo,
		bookedSlotRepo: bookedSlotRepo,
		patientRepo:    patientRepo,
		userRepo:       userRepo,
		auditService:   auditService,
		slaClassifier:  slaClassifier,
	}
}

func (u *labOrderUsecase) CreateOrder(ctx context.Context, doctorID uuid.UUID, req *dto.CreateLabOrderRequest) (*dto.LabOrderResponse, error) {
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

	deadline := time.Now().Add(labOrderSLADays * 24 * time.Hour)
	order := &entity.LabOrder{
		PatientID:   req.PatientID,
		OrderedByID: doctorID,
		Vertical:    entity.Vertical(req.Vertical),
		PanelName:   req.PanelName,
		Status:      entity.LabOrderStatusOrdered,
		DeadlineAt:  &deadline,
		Notes:       req.Notes,
	}

	if err := u.labOrderRepo.Create(tx, order); err != nil {
		if isForeignKeyError(err, "patient") {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to create lab order: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAction(ctx, tx, &doctorID, entity.AuditActionLabOrderCreate, entity.JSON{
		"lab_order_id": order.ID.String(),
		"patient_id":   req.PatientID.String(),
		"panel_name":   req.PanelName,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.LabOrderToResponse(order), nil
}

func (u *labOrderUsecase) GetOrder(ctx context.Context, id uuid.UUID) (*dto.LabOrderResponse, error) {
	order, err := u.labOrderRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find lab order: %+v", err)
		return nil, err
	}
	if order == nil {
		return nil, ErrLabOrderNotFound
	}

	return converter.LabOrderToResponse(order), nil
}

func (u *labOrderUsecase) GetMyOrders(ctx context.Context, patientID uuid.UUID) (*dto.LabOrderListResponse, error) {
	orders, err := u.labOrderRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list lab orders: %+v", err)
		return nil, err
	}

	return &dto.LabOrderListResponse{
		Orders: converter.LabOrdersToResponses(orders),
		Total:  len(orders),
	}, nil
}

func (u *labOrderUsecase) BookCollectionSlot(ctx context.Context, patientID, orderID uuid.UUID, req *dto.BookCollectionSlotRequest) (*dto.LabOrderResponse, error) {
	startAt, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	endAt, err := time.Parse(time.RFC3339, req.EndAt)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if !endAt.After(startAt) {
		return nil, ErrInvalidSlotWindow
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	order, err := u.labOrderRepo.FindByID(tx, orderID)
	if err != nil {
		u.log.Warnf("Failed to find lab order: %+v", err)
		return nil, err
	}
	if order == nil || order.PatientID != patientID {
		return nil, ErrLabOrderNotFound
	}
	if order.Status.IsTerminal() {
		return nil, ErrLabOrderTerminal
	}
	if order.Slot != nil && order.Slot.IsBooked() {
		return nil, ErrSlotAlreadyBooked
	}

	// A cancelled or missed slot is rebooked in place; the table keeps
	// one row per order, so only first-time bookings insert
	slot := order.Slot
	if slot != nil {
		rows, err := u.bookedSlotRepo.Rebook(tx, slot.ID, startAt, endAt)
		if err != nil {
			u.log.Warnf("Failed to rebook slot: %+v", err)
			return nil, err
		}
		if rows == 0 {
			return nil, ErrSlotAlreadyBooked
		}
		slot.Rebook(startAt, endAt)
	} else {
		slot = &entity.BookedSlot{
			LabOrderID: orderID,
			StartAt:    startAt,
			EndAt:      endAt,
			Status:     entity.BookedSlotStatusBooked,
		}
		if err := u.bookedSlotRepo.Create(tx, slot); err != nil {
			if isDuplicateKeyError(err, "lab_order") {
				return nil, ErrSlotAlreadyBooked
			}
			u.log.Warnf("Failed to create booked slot: %+v", err)
			return nil, err
		}
	}

	rows, err := u.labOrderRepo.UpdateStatus(tx, orderID, entity.LabOrderStatusSlotBooked)
	if err != nil {
		u.log.Warnf("Failed to update lab order status: %+v", err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrLabOrderTerminal
	}

	if err := u.auditService.LogAction(ctx, tx, &patientID, entity.AuditActionSlotBook, entity.JSON{
		"lab_order_id": orderID.String(),
		"start_at":     startAt.Format(time.RFC3339),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	order.Status = entity.LabOrderStatusSlotBooked
	order.Slot = slot
	return converter.LabOrderToResponse(order), nil
}

func (u *labOrderUsecase) CancelCollectionSlot(ctx context.Context, patientID, orderID uuid.UUID) (*dto.LabOrderResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	order, err := u.labOrderRepo.FindByID(tx, orderID)
	if err != nil {
		u.log.Warnf("Failed to find lab order: %+v", err)
		return nil, err
	}
	if order == nil || order.PatientID != patientID {
		return nil, ErrLabOrderNotFound
	}
	if order.Slot == nil || !order.Slot.IsBooked() {
		return nil, ErrSlotNotBooked
	}

	rows, err := u.bookedSlotRepo.Cancel(tx, order.Slot.ID)
	if err != nil {
		u.log.Warnf("Failed to cancel booked slot: %+v", err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrSlotNotBooked
	}

	// The order falls back to ORDERED so the patient can rebook
	rows, err = u.labOrderRepo.UpdateStatus(tx, orderID, entity.LabOrderStatusOrdered)
	if err != nil {
		u.log.Warnf("Failed to update lab order status: %+v", err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrLabOrderTerminal
	}

	if err := u.auditService.LogAction(ctx, tx, &patientID, entity.AuditActionSlotCancel, entity.JSON{
		"lab_order_id": orderID.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	order.Status = entity.LabOrderStatusOrdered
	order.Slot.Status = entity.BookedSlotStatusCancelled
	return converter.LabOrderToResponse(order), nil
}

func (u *labOrderUsecase) AssignPhlebotomist(ctx context.Context, actorID, orderID uuid.UUID, req *dto.AssignPhlebotomistRequest) (*dto.LabOrderResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	assignee, err := u.userRepo.FindByID(tx, req.PhlebotomistID)
	if err != nil {
		u.log.Warnf("Failed to find assignee: %+v", err)
		return nil, err
	}
	if assignee == nil || assignee.Role != entity.RolePhlebotomist {
		return nil, ErrPhlebotomistInvalid
	}

	rows, err := u.labOrderRepo.AssignPhlebotomist(tx, orderID, req.PhlebotomistID)
	if err != nil {
		u.log.Warnf("Failed to assign phlebotomist: %+v", err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrAssignNotAllowed
	}

	if err := u.auditService.LogAction(ctx, tx, &actorID, entity.AuditActionLabOrderAssign, entity.JSON{
		"lab_order_id":    orderID.String(),
		"phlebotomist_id": req.PhlebotomistID.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	order, err := u.labOrderRepo.FindByID(u.db.WithContext(ctx), orderID)
	if err != nil {
		u.log.Warnf("Failed to reload lab order: %+v", err)
		return nil, err
	}
	if order == nil {
		return nil, ErrLabOrderNotFound
	}

	return converter.LabOrderToResponse(order), nil
}

func (u *labOrderUsecase) UpdateStatus(ctx context.Context, actorID uuid.UUID, actorRole entity.Role, orderID uuid.UUID, req *dto.UpdateLabOrderStatusRequest) (*dto.LabOrderResponse, error) {
	newStatus := entity.LabOrderStatus(req.Status)
	if !newStatus.Valid() {
		return nil, ErrInvalidOrderStatus
	}
	if !labStatusAllowedForRole(actorRole, newStatus) {
		return nil, ErrStatusNotAllowed
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	order, err := u.labOrderRepo.FindByID(tx, orderID)
	if err != nil {
		u.log.Warnf("Failed to find lab order: %+v", err)
		return nil, err
	}
	if order == nil {
		return nil, ErrLabOrderNotFound
	}
	oldStatus := order.Status

	rows, err := u.labOrderRepo.UpdateStatus(tx, orderID, newStatus)
	if err != nil {
		u.log.Warnf("Failed to update lab order status: %+v", err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrLabOrderTerminal
	}

	if err := u.auditService.LogStatusChange(ctx, tx, &actorID, entity.AuditActionLabOrderStatus,
		"lab_order", orderID.String(), string(oldStatus), string(newStatus)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	order.Status = newStatus
	return converter.LabOrderToResponse(order), nil
}

// EscalationBoard lists open lab orders with their SLA judgment, worst
// first. Only orders carrying a deadline participate.
func (u *labOrderUsecase) EscalationBoard(ctx context.Context) (*dto.EscalationBoardResponse, error) {
	orders, err := u.labOrderRepo.FindOpen(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list open lab orders: %+v", err)
		return nil, err
	}

	now := time.Now()
	var breached, approaching, onTime []dto.EscalationItemResponse

	for i := range orders {
		order := &orders[i]
		if order.DeadlineAt == nil {
			continue
		}

		info := u.slaClassifier.Classify(*order.DeadlineAt, now)
		item := dto.EscalationItemResponse{
			Order:       *converter.LabOrderToResponse(order),
			PatientName: order.Patient.User.FullName,
			SLA: dto.SLAResponse{
				Status:       string(info.Status),
				Reason:       info.Reason,
				HoursOverdue: info.HoursOverdue,
				DeadlineAt:   info.DeadlineAt,
			},
		}

		switch info.Status {
		case service.SLABreached:
			breached = append(breached, item)
		case service.SLAApproaching:
			approaching = append(approaching, item)
		default:
			onTime = append(onTime, item)
		}
	}

	items := make([]dto.EscalationItemResponse, 0, len(breached)+len(approaching)+len(onTime))
	items = append(items, breached...)
	items = append(items, approaching...)
	items = append(items, onTime...)

	return &dto.EscalationBoardResponse{
		Items: items,
		Total: len(items),
	}, nil
}
