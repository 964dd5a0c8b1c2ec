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
	ErrSlotNotFound         = errors.New("availability slot not found")
	ErrSlotInPast           = errors.New("slot date is in the past")
	ErrSessionNotFound      = errors.New("video session not found")
	ErrSessionAlreadyBooked = errors.New("you already have a session in this slot")
	ErrSessionTerminal      = errors.New("video session is in a terminal status")
	ErrDoctorNotFound       = errors.New("doctor not found")
	ErrInvalidTimeFormat    = errors.New("invalid time format, use HH:MM")
)

type VideoSessionUsecase interface {
	CreateSlot(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error)
	UpdateSlot(ctx context.Context, slotID int, req *dto.UpdateSlotRequest) (*dto.SlotResponse, error)
	DeleteSlot(ctx context.Context, slotID int) error
	SearchSlots(ctx context.Context, filter *entity.SlotFilter) (*dto.SlotListResponse, error)
	ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	BookSession(ctx context.Context, patientID uuid.UUID, req *dto.BookSessionRequest) (*dto.VideoSessionResponse, error)
	UpdateSessionStatus(ctx context.Context, actorID, sessionID uuid.UUID, req *dto.UpdateSessionStatusRequest) (*dto.VideoSessionResponse, error)
	GetMySessions(ctx context.Context, patientID uuid.UUID) (*dto.VideoSessionListResponse, error)
	GetDoctorSessions(ctx context.Context, doctorID uuid.UUID) (*dto.VideoSessionListResponse, error)
}

type videoSessionUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	slotRepo     repository.AvailabilitySlotRepository
	sessionRepo  repository.VideoSessionRepository
	doctorRepo   repository.DoctorProfileRepository
	quotaService *service.SlotQuotaService
	auditService service.AuditService
}

func NewVideoSessionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	slotRepo repository.AvailabilitySlotRepository,
	sessionRepo repository.VideoSessionRepository,
	doctorRepo repository.DoctorProfileRepository,
	quotaService *service.SlotQuotaService,
	auditService service.AuditService,
) VideoSessionUsecase {
	return &videoSessionUsecase{
		db:           db,
		log:          log,
		slotRepo:     slotRepo,
		sessionRepo:  sessionRepo,
		doctorRepo:   doctorRepo,
		quotaService: quotaService,
		auditService: auditService,
	}
}

func (u *videoSessionUsecase) CreateSlot(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error) {
	slotDate, err := time.Parse("2006-01-02", req.SlotDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if slotDate.Before(time.Now().UTC().Truncate(24 * time.Hour)) {
		return nil, ErrSlotInPast
	}
	if err := validateTimeOfDay(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	slot := &entity.AvailabilitySlot{
		DoctorID:   req.DoctorID,
		SlotDate:   slotDate,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		TotalQuota: req.TotalQuota,
	}

	if err := u.slotRepo.Create(u.db.WithContext(ctx), slot); err != nil {
		u.log.Warnf("Failed to create availability slot: %+v", err)
		return nil, err
	}

	// Seed the quota counter so bookings can start immediately
	if err := u.quotaService.Seed(ctx, slot.ID, req.TotalQuota, slotDate); err != nil {
		u.log.Warnf("Failed to seed slot quota: %+v", err)
	}

	slot.Doctor = *doctor
	return converter.SlotToResponse(slot), nil
}

func (u *videoSessionUsecase) UpdateSlot(ctx context.Context, slotID int, req *dto.UpdateSlotRequest) (*dto.SlotResponse, error) {
	slot, err := u.slotRepo.FindByID(u.db.WithContext(ctx), slotID)
	if err != nil {
		u.log.Warnf("Failed to find availability slot: %+v", err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	if req.SlotDate != "" {
		slotDate, err := time.Parse("2006-01-02", req.SlotDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		slot.SlotDate = slotDate
	}
	if req.StartTime != "" {
		slot.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		slot.EndTime = req.EndTime
	}
	if err := validateTimeOfDay(slot.StartTime, slot.EndTime); err != nil {
		return nil, err
	}
	if req.TotalQuota != nil {
		slot.TotalQuota = *req.TotalQuota
	}

	if err := u.slotRepo.Update(u.db.WithContext(ctx), slot); err != nil {
		u.log.Warnf("Failed to update availability slot: %+v", err)
		return nil, err
	}

	return converter.SlotToResponse(slot), nil
}

func (u *videoSessionUsecase) DeleteSlot(ctx context.Context, slotID int) error {
	rows, err := u.slotRepo.Delete(u.db.WithContext(ctx), slotID)
	if err != nil {
		u.log.Warnf("Failed to delete availability slot: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrSlotNotFound
	}
	return nil
}

func (u *videoSessionUsecase) SearchSlots(ctx context.Context, filter *entity.SlotFilter) (*dto.SlotListResponse, error) {
	slots, err := u.slotRepo.FindAllWithActiveDoctor(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to search availability slots: %+v", err)
		return nil, err
	}

	return &dto.SlotListResponse{
		Slots: converter.SlotsToResponses(slots),
		Total: len(slots),
	}, nil
}

func (u *videoSessionUsecase) ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

// BookSession reserves quota in Redis first, then writes the session. If
// the database write fails the reservation is released, so the counter
// never drifts below the real booking count.
func (u *videoSessionUsecase) BookSession(ctx context.Context, patientID uuid.UUID, req *dto.BookSessionRequest) (*dto.VideoSessionResponse, error) {
	slot, err := u.slotRepo.FindByID(u.db.WithContext(ctx), req.SlotID)
	if err != nil {
		u.log.Warnf("Failed to find availability slot: %+v", err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}
	if slot.SlotDate.Before(time.Now().UTC().Truncate(24 * time.Hour)) {
		return nil, ErrSlotInPast
	}

	existing, err := u.sessionRepo.FindByPatientAndSlot(u.db.WithContext(ctx), patientID, req.SlotID)
	if err != nil {
		u.log.Warnf("Failed to check existing session: %+v", err)
		return nil, err
	}
	if existing != nil && !existing.Status.IsTerminal() {
		return nil, ErrSessionAlreadyBooked
	}

	if err := u.quotaService.Reserve(ctx, req.SlotID); err != nil {
		if errors.Is(err, service.ErrSlotFull) {
			return nil, service.ErrSlotFull
		}
		u.log.Warnf("Failed to reserve slot quota: %+v", err)
		return nil, err
	}

	session := &entity.VideoSession{
		PatientID: patientID,
		DoctorID:  slot.DoctorID,
		SlotID:    req.SlotID,
		Status:    entity.VideoSessionStatusScheduled,
	}

	if err := u.sessionRepo.Create(u.db.WithContext(ctx), session); err != nil {
		// Compensate the reservation so the seat is not lost
		if releaseErr := u.quotaService.Release(ctx, req.SlotID); releaseErr != nil {
			u.log.Errorf("Failed to release quota after booking failure, slot %d will be off by one until next sync: %+v", req.SlotID, releaseErr)
		}
		u.log.Warnf("Failed to create video session: %+v", err)
		return nil, err
	}

	_ = u.auditService.LogAction(ctx, u.db.WithContext(ctx), &patientID, entity.AuditActionSessionBook, entity.JSON{
		"session_id": session.ID.String(),
		"slot_id":    req.SlotID,
	})

	session.Slot = *slot
	return converter.VideoSessionToResponse(session), nil
}

func (u *videoSessionUsecase) UpdateSessionStatus(ctx context.Context, actorID, sessionID uuid.UUID, req *dto.UpdateSessionStatusRequest) (*dto.VideoSessionResponse, error) {
	newStatus := entity.VideoSessionStatus(req.Status)
	if !newStatus.Valid() {
		return nil, ErrInvalidOrderStatus
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	session, err := u.sessionRepo.FindByID(tx, sessionID)
	if err != nil {
		u.log.Warnf("Failed to find video session: %+v", err)
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	oldStatus := session.Status

	rows, err := u.sessionRepo.UpdateStatus(tx, sessionID, newStatus)
	if err != nil {
		u.log.Warnf("Failed to update video session status: %+v", err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrSessionTerminal
	}

	if err := u.auditService.LogStatusChange(ctx, tx, &actorID, entity.AuditActionSessionStatus,
		"video_session", sessionID.String(), string(oldStatus), string(newStatus)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	// A cancellation frees the seat for another patient
	if newStatus == entity.VideoSessionStatusCancelled && oldStatus != entity.VideoSessionStatusCancelled {
		if err := u.quotaService.Release(ctx, session.SlotID); err != nil {
			u.log.Warnf("Failed to release quota after cancellation: %+v", err)
		}
	}

	session.Status = newStatus
	return converter.VideoSessionToResponse(session), nil
}

func (u *videoSessionUsecase) GetMySessions(ctx context.Context, patientID uuid.UUID) (*dto.VideoSessionListResponse, error) {
	sessions, err := u.sessionRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list video sessions: %+v", err)
		return nil, err
	}

	return &dto.VideoSessionListResponse{
		Sessions: converter.VideoSessionsToResponses(sessions),
		Total:    len(sessions),
	}, nil
}

func (u *videoSessionUsecase) GetDoctorSessions(ctx context.Context, doctorID uuid.UUID) (*dto.VideoSessionListResponse, error) {
	sessions, err := u.sessionRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to list doctor sessions: %+v", err)
		return nil, err
	}

	return &dto.VideoSessionListResponse{
		Sessions: converter.VideoSessionsToResponses(sessions),
		Total:    len(sessions),
	}, nil
}

func validateTimeOfDay(startTime, endTime string) error {
	start, err := time.Parse("15:04", startTime)
	if err != nil {
		return ErrInvalidTimeFormat
	}
	end, err := time.Parse("15:04", endTime)
	if err != nil {
		return ErrInvalidTimeFormat
	}
	if !end.After(start) {
		return ErrInvalidSlotWindow
	}
	return nil
}
