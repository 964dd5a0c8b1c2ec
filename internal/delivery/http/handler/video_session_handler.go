package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/delivery/http/middleware"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/service"
	"telehealth-api/internal/usecase"
	"telehealth-api/pkg/response"
	"telehealth-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type VideoSessionHandler struct {
	sessionUsecase usecase.VideoSessionUsecase
	validator      *validator.CustomValidator
}

func NewVideoSessionHandler(sessionUsecase usecase.VideoSessionUsecase, validator *validator.CustomValidator) *VideoSessionHandler {
	return &VideoSessionHandler{
		sessionUsecase: sessionUsecase,
		validator:      validator,
	}
}

// CreateSlot creates a doctor availability slot
// @Summary Create an availability slot
// @Tags VideoSessions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateSlotRequest true "Create Slot Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/slots [post]
func (h *VideoSessionHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.sessionUsecase.CreateSlot(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrInvalidDateFormat, usecase.ErrInvalidTimeFormat, usecase.ErrInvalidSlotWindow, usecase.ErrSlotInPast:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to create slot")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Slot created successfully", slot)
}

// UpdateSlot edits an availability slot
// @Summary Update an availability slot
// @Tags VideoSessions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Slot ID"
// @Param request body dto.UpdateSlotRequest true "Update Slot Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/slots/{id} [put]
func (h *VideoSessionHandler) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid slot ID", nil)
		return
	}

	var req dto.UpdateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.sessionUsecase.UpdateSlot(r.Context(), slotID, &req)
	if err != nil {
		switch err {
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Slot not found")
		case usecase.ErrInvalidDateFormat, usecase.ErrInvalidTimeFormat, usecase.ErrInvalidSlotWindow:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slot updated successfully", slot)
}

// DeleteSlot removes an availability slot
// @Summary Delete an availability slot
// @Tags VideoSessions
// @Security BearerAuth
// @Produce json
// @Param id path int true "Slot ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/slots/{id} [delete]
func (h *VideoSessionHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid slot ID", nil)
		return
	}

	if err := h.sessionUsecase.DeleteSlot(r.Context(), slotID); err != nil {
		switch err {
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Slot not found")
		default:
			response.InternalServerError(w, "Failed to delete slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slot deleted successfully", nil)
}

// SearchSlots lists bookable slots with optional filters
// @Summary Search availability slots
// @Tags VideoSessions
// @Security BearerAuth
// @Produce json
// @Param start_at query string false "Start date (YYYY-MM-DD)"
// @Param end_at query string false "End date (YYYY-MM-DD)"
// @Param doctor_name query string false "Doctor name filter"
// @Param specialization query string false "Specialization filter"
// @Success 200 {object} response.Response
// @Router /slots [get]
func (h *VideoSessionHandler) SearchSlots(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := &entity.SlotFilter{
		StartAt:        query.Get("start_at"),
		EndAt:          query.Get("end_at"),
		DoctorName:     query.Get("doctor_name"),
		Specialization: query.Get("specialization"),
	}

	slots, err := h.sessionUsecase.SearchSlots(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to search slots")
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}

// ListDoctors lists active doctors
// @Summary List doctors
// @Tags VideoSessions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctors [get]
func (h *VideoSessionHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.sessionUsecase.ListDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// BookSession books a video visit against a slot
// @Summary Book a video session
// @Tags VideoSessions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BookSessionRequest true "Book Session Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /patient/sessions [post]
func (h *VideoSessionHandler) BookSession(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.BookSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.sessionUsecase.BookSession(r.Context(), patientID, &req)
	if err != nil {
		switch err {
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Slot not found")
		case usecase.ErrSlotInPast:
			response.Error(w, http.StatusBadRequest, "Slot date is in the past", nil)
		case usecase.ErrSessionAlreadyBooked:
			response.Error(w, http.StatusConflict, "You already have a session in this slot", nil)
		case service.ErrSlotFull:
			response.Error(w, http.StatusConflict, "Slot is fully booked", nil)
		default:
			response.InternalServerError(w, "Failed to book session")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Session booked successfully", session)
}

// UpdateSessionStatus moves a video session through its lifecycle
// @Summary Update video session status
// @Tags VideoSessions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.UpdateSessionStatusRequest true "Update Status Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /sessions/{id}/status [patch]
func (h *VideoSessionHandler) UpdateSessionStatus(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	sessionID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	var req dto.UpdateSessionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.sessionUsecase.UpdateSessionStatus(r.Context(), actorID, sessionID, &req)
	if err != nil {
		switch err {
		case usecase.ErrSessionNotFound:
			response.NotFound(w, "Session not found")
		case usecase.ErrInvalidOrderStatus:
			response.Error(w, http.StatusBadRequest, "Invalid status value", nil)
		case usecase.ErrSessionTerminal:
			response.Error(w, http.StatusConflict, "Session is already closed", nil)
		default:
			response.InternalServerError(w, "Failed to update session status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Session status updated successfully", session)
}

// GetMySessions lists the caller's video sessions
// @Summary List my video sessions
// @Tags VideoSessions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /patient/sessions [get]
func (h *VideoSessionHandler) GetMySessions(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	sessions, err := h.sessionUsecase.GetMySessions(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to list sessions")
		return
	}

	response.Success(w, http.StatusOK, "Sessions retrieved successfully", sessions)
}

// GetDoctorSessions lists the sessions assigned to the calling doctor
// @Summary List doctor video sessions
// @Tags VideoSessions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctor/sessions [get]
func (h *VideoSessionHandler) GetDoctorSessions(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	sessions, err := h.sessionUsecase.GetDoctorSessions(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to list sessions")
		return
	}

	response.Success(w, http.StatusOK, "Sessions retrieved successfully", sessions)
}
