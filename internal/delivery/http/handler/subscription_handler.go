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

type SubscriptionHandler struct {
	subscriptionUsecase usecase.SubscriptionUsecase
	validator           *validator.CustomValidator
}

func NewSubscriptionHandler(subscriptionUsecase usecase.SubscriptionUsecase, validator *validator.CustomValidator) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionUsecase: subscriptionUsecase,
		validator:           validator,
	}
}

// CreatePlan creates a treatment plan
// @Summary Create a plan
// @Tags Subscriptions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePlanRequest true "Create Plan Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/plans [post]
func (h *SubscriptionHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	plan, err := h.subscriptionUsecase.CreatePlan(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create plan")
		return
	}

	response.Success(w, http.StatusCreated, "Plan created successfully", plan)
}

// ListPlans lists treatment plans, optionally by vertical
// @Summary List plans
// @Tags Subscriptions
// @Security BearerAuth
// @Produce json
// @Param vertical query string false "Vertical filter"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /plans [get]
func (h *SubscriptionHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	vertical := r.URL.Query().Get("vertical")

	plans, err := h.subscriptionUsecase.ListPlans(r.Context(), vertical)
	if err != nil {
		switch err {
		case usecase.ErrInvalidVertical:
			response.Error(w, http.StatusBadRequest, "Invalid vertical", nil)
		default:
			response.InternalServerError(w, "Failed to list plans")
		}
		return
	}

	response.Success(w, http.StatusOK, "Plans retrieved successfully", plans)
}

// Subscribe enrolls the caller in a plan
// @Summary Subscribe to a plan
// @Tags Subscriptions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SubscribeRequest true "Subscribe Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /patient/subscriptions [post]
func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	subscription, err := h.subscriptionUsecase.Subscribe(r.Context(), patientID, &req)
	if err != nil {
		switch err {
		case usecase.ErrPlanNotFound:
			response.NotFound(w, "Plan not found")
		case usecase.ErrAlreadySubscribed:
			response.Error(w, http.StatusConflict, "An active subscription to this plan already exists", nil)
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to subscribe")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Subscribed successfully", subscription)
}

// GetMySubscriptions lists the caller's subscriptions
// @Summary List my subscriptions
// @Tags Subscriptions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /patient/subscriptions [get]
func (h *SubscriptionHandler) GetMySubscriptions(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	subscriptions, err := h.subscriptionUsecase.GetMySubscriptions(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to list subscriptions")
		return
	}

	response.Success(w, http.StatusOK, "Subscriptions retrieved successfully", subscriptions)
}

// UpdateStatus pauses, cancels, or reactivates a subscription
// @Summary Update subscription status
// @Tags Subscriptions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Subscription ID"
// @Param request body dto.UpdateSubscriptionStatusRequest true "Update Status Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /subscriptions/{id}/status [patch]
func (h *SubscriptionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
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

	subscriptionID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid subscription ID", nil)
		return
	}

	var req dto.UpdateSubscriptionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	subscription, err := h.subscriptionUsecase.UpdateStatus(r.Context(), actorID, actorRole, subscriptionID, &req)
	if err != nil {
		switch err {
		case usecase.ErrSubscriptionNotFound:
			response.NotFound(w, "Subscription not found")
		case usecase.ErrInvalidOrderStatus:
			response.Error(w, http.StatusBadRequest, "Invalid status value", nil)
		case usecase.ErrSubscriptionTerminal:
			response.Error(w, http.StatusConflict, "Subscription is already closed", nil)
		default:
			response.InternalServerError(w, "Failed to update subscription status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Subscription status updated successfully", subscription)
}
