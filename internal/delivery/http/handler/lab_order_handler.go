package handler

import (
	"encoding/json"
	"net/http"

	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/delivery/http/middleware"
	"telehealth-api/internal/usecase"
	"telehealth-api/pkg/response"
	"telehealth-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type LabOrderHandler struct {
	labOrderUsecase usecase.LabOrderUsecase
	validator       *validator.CustomValidator
}

func NewLabOrderHandler(labOrderUsecase usecase.LabOrderUsecase, validator *validator.CustomValidator) *LabOrderHandler {
	return &LabOrderHandler{
		labOrderUsecase: labOrderUsecase,
		validator:       validator,
	}
}

// CreateOrder orders a lab panel for a patient
// @Summary Create a lab order
// @Tags LabOrders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateLabOrderRequest true "Create Lab Order Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /lab-orders [post]
func (h *LabOrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateLabOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	order, err := h.labOrderUsecase.CreateOrder(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to create lab order")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Lab order created successfully", order)
}

// GetOrder returns a single lab order
// @Summary Get a lab order
// @Tags LabOrders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Lab Order ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /lab-orders/{id} [get]
func (h *LabOrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid lab order ID", nil)
		return
	}

	order, err := h.labOrderUsecase.GetOrder(r.Context(), orderID)
	if err != nil {
		switch err {
		case usecase.ErrLabOrderNotFound:
			response.NotFound(w, "Lab order not found")
		default:
			response.InternalServerError(w, "Failed to get lab order")
		}
		return
	}

	response.Success(w, http.StatusOK, "Lab order retrieved successfully", order)
}

// GetMyOrders lists the caller's lab orders
// @Summary List my lab orders
// @Tags LabOrders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /patient/lab-orders [get]
func (h *LabOrderHandler) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	orders, err := h.labOrderUsecase.GetMyOrders(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to list lab orders")
		return
	}

	response.Success(w, http.StatusOK, "Lab orders retrieved successfully", orders)
}

// BookCollectionSlot books a sample collection window
// @Summary Book a collection slot
// @Tags LabOrders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Lab Order ID"
// @Param request body dto.BookCollectionSlotRequest true "Book Collection Slot Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /patient/lab-orders/{id}/slot [post]
func (h *LabOrderHandler) BookCollectionSlot(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	orderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid lab order ID", nil)
		return
	}

	var req dto.BookCollectionSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	order, err := h.labOrderUsecase.BookCollectionSlot(r.Context(), patientID, orderID, &req)
	if err != nil {
		switch err {
		case usecase.ErrLabOrderNotFound:
			response.NotFound(w, "Lab order not found")
		case usecase.ErrLabOrderTerminal:
			response.Error(w, http.StatusConflict, "Lab order is already closed", nil)
		case usecase.ErrSlotAlreadyBooked:
			response.Error(w, http.StatusConflict, "A collection slot is already booked", nil)
		case usecase.ErrInvalidDateFormat, usecase.ErrInvalidSlotWindow:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to book collection slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Collection slot booked successfully", order)
}

// CancelCollectionSlot cancels a booked collection window
// @Summary Cancel a collection slot
// @Tags LabOrders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Lab Order ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patient/lab-orders/{id}/slot [delete]
func (h *LabOrderHandler) CancelCollectionSlot(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	orderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid lab order ID", nil)
		return
	}

	order, err := h.labOrderUsecase.CancelCollectionSlot(r.Context(), patientID, orderID)
	if err != nil {
		switch err {
		case usecase.ErrLabOrderNotFound:
			response.NotFound(w, "Lab order not found")
		case usecase.ErrSlotNotBooked:
			response.Error(w, http.StatusConflict, "No booked slot to cancel", nil)
		case usecase.ErrLabOrderTerminal:
			response.Error(w, http.StatusConflict, "Lab order is already closed", nil)
		default:
			response.InternalServerError(w, "Failed to cancel collection slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Collection slot cancelled successfully", order)
}

// AssignPhlebotomist assigns a phlebotomist to a lab order
// @Summary Assign a phlebotomist
// @Tags LabOrders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Lab Order ID"
// @Param request body dto.AssignPhlebotomistRequest true "Assign Phlebotomist Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /lab/orders/{id}/assign [post]
func (h *LabOrderHandler) AssignPhlebotomist(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	orderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid lab order ID", nil)
		return
	}

	var req dto.AssignPhlebotomistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	order, err := h.labOrderUsecase.AssignPhlebotomist(r.Context(), actorID, orderID, &req)
	if err != nil {
		switch err {
		case usecase.ErrLabOrderNotFound:
			response.NotFound(w, "Lab order not found")
		case usecase.ErrPhlebotomistInvalid:
			response.Error(w, http.StatusBadRequest, "Assignee is not a phlebotomist", nil)
		case usecase.ErrAssignNotAllowed:
			response.Error(w, http.StatusConflict, "Order is not awaiting phlebotomist assignment", nil)
		default:
			response.InternalServerError(w, "Failed to assign phlebotomist")
		}
		return
	}

	response.Success(w, http.StatusOK, "Phlebotomist assigned successfully", order)
}

// UpdateStatus moves a lab order through its lifecycle
// @Summary Update lab order status
// @Tags LabOrders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Lab Order ID"
// @Param request body dto.UpdateLabOrderStatusRequest true "Update Status Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /lab-orders/{id}/status [patch]
func (h *LabOrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	actorRole, ok := middleware.GetRoleFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	orderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid lab order ID", nil)
		return
	}

	var req dto.UpdateLabOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	order, err := h.labOrderUsecase.UpdateStatus(r.Context(), actorID, actorRole, orderID, &req)
	if err != nil {
		switch err {
		case usecase.ErrLabOrderNotFound:
			response.NotFound(w, "Lab order not found")
		case usecase.ErrInvalidOrderStatus:
			response.Error(w, http.StatusBadRequest, "Invalid status value", nil)
		case usecase.ErrStatusNotAllowed:
			response.Forbidden(w, "Status change not allowed for this role")
		case usecase.ErrLabOrderTerminal:
			response.Error(w, http.StatusConflict, "Lab order is already closed", nil)
		default:
			response.InternalServerError(w, "Failed to update lab order status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Lab order status updated successfully", order)
}

// EscalationBoard lists open lab orders with SLA judgments
// @Summary Lab order escalation board
// @Tags LabOrders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/escalations [get]
func (h *LabOrderHandler) EscalationBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.labOrderUsecase.EscalationBoard(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to build escalation board")
		return
	}

	response.Success(w, http.StatusOK, "Escalation board retrieved successfully", board)
}
