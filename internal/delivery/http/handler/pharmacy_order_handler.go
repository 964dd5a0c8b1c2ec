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

type PharmacyOrderHandler struct {
	orderUsecase usecase.PharmacyOrderUsecase
	validator    *validator.CustomValidator
}

func NewPharmacyOrderHandler(orderUsecase usecase.PharmacyOrderUsecase, validator *validator.CustomValidator) *PharmacyOrderHandler {
	return &PharmacyOrderHandler{
		orderUsecase: orderUsecase,
		validator:    validator,
	}
}

// CreatePrescription issues a prescription and opens its pharmacy order
// @Summary Create a prescription
// @Tags Prescriptions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePrescriptionRequest true "Create Prescription Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctor/prescriptions [post]
func (h *PharmacyOrderHandler) CreatePrescription(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	prescription, err := h.orderUsecase.CreatePrescription(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to create prescription")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Prescription created successfully", prescription)
}

// GetMyPrescriptions lists the caller's prescriptions
// @Summary List my prescriptions
// @Tags Prescriptions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /patient/prescriptions [get]
func (h *PharmacyOrderHandler) GetMyPrescriptions(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	prescriptions, err := h.orderUsecase.GetMyPrescriptions(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to list prescriptions")
		return
	}

	response.Success(w, http.StatusOK, "Prescriptions retrieved successfully", prescriptions)
}

// GetMyOrders lists the caller's pharmacy orders
// @Summary List my pharmacy orders
// @Tags PharmacyOrders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /patient/orders [get]
func (h *PharmacyOrderHandler) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	orders, err := h.orderUsecase.GetMyOrders(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to list pharmacy orders")
		return
	}

	response.Success(w, http.StatusOK, "Pharmacy orders retrieved successfully", orders)
}

// GetOrder returns a single pharmacy order
// @Summary Get a pharmacy order
// @Tags PharmacyOrders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Pharmacy Order ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /orders/{id} [get]
func (h *PharmacyOrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid pharmacy order ID", nil)
		return
	}

	order, err := h.orderUsecase.GetOrder(r.Context(), orderID)
	if err != nil {
		switch err {
		case usecase.ErrPharmacyOrderNotFound:
			response.NotFound(w, "Pharmacy order not found")
		default:
			response.InternalServerError(w, "Failed to get pharmacy order")
		}
		return
	}

	response.Success(w, http.StatusOK, "Pharmacy order retrieved successfully", order)
}

// GetQueue lists pharmacy orders in a given status
// @Summary Pharmacy order work queue
// @Tags PharmacyOrders
// @Security BearerAuth
// @Produce json
// @Param status query string true "Order status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /pharmacy/queue [get]
func (h *PharmacyOrderHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		response.Error(w, http.StatusBadRequest, "status query parameter is required", nil)
		return
	}

	orders, err := h.orderUsecase.GetQueueByStatus(r.Context(), status)
	if err != nil {
		switch err {
		case usecase.ErrInvalidOrderStatus:
			response.Error(w, http.StatusBadRequest, "Invalid status value", nil)
		default:
			response.InternalServerError(w, "Failed to list pharmacy orders")
		}
		return
	}

	response.Success(w, http.StatusOK, "Pharmacy orders retrieved successfully", orders)
}

// UpdateOrderStatus moves a pharmacy order through its lifecycle
// @Summary Update pharmacy order status
// @Tags PharmacyOrders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Pharmacy Order ID"
// @Param request body dto.UpdateOrderStatusRequest true "Update Status Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /orders/{id}/status [patch]
func (h *PharmacyOrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	orderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid pharmacy order ID", nil)
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	order, err := h.orderUsecase.UpdateOrderStatus(r.Context(), actorID, orderID, &req)
	if err != nil {
		switch err {
		case usecase.ErrPharmacyOrderNotFound:
			response.NotFound(w, "Pharmacy order not found")
		case usecase.ErrInvalidOrderStatus:
			response.Error(w, http.StatusBadRequest, "Invalid status value", nil)
		case usecase.ErrPharmacyOrderTerminal:
			response.Error(w, http.StatusConflict, "Pharmacy order is already closed", nil)
		default:
			response.InternalServerError(w, "Failed to update pharmacy order status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Pharmacy order status updated successfully", order)
}
