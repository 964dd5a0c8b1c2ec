package handler

import (
	"encoding/json"
	"net/http"

	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/delivery/http/middleware"
	"telehealth-api/internal/usecase"
	"telehealth-api/pkg/response"
	"telehealth-api/pkg/validator"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// GetMyProfile returns the caller's patient profile
// @Summary Get my profile
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patient/profile [get]
func (h *PatientHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	profile, err := h.patientUsecase.GetMyProfile(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrProfileNotFound:
			response.NotFound(w, "Patient profile not found")
		default:
			response.InternalServerError(w, "Failed to get profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", profile)
}

// UpdateMyProfile edits the caller's patient profile
// @Summary Update my profile
// @Tags Patients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdatePatientProfileRequest true "Update Profile Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patient/profile [put]
func (h *PatientHandler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.UpdatePatientProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.patientUsecase.UpdateMyProfile(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrProfileNotFound:
			response.NotFound(w, "Patient profile not found")
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", profile)
}
