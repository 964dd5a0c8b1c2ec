package handler

import (
	"net/http"

	"telehealth-api/internal/usecase"
	"telehealth-api/pkg/response"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{auditLogUsecase: auditLogUsecase}
}

// List returns the audit trail, newest first
// @Summary List audit logs
// @Tags AuditLogs
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/audit-logs [get]
func (h *AuditLogHandler) List(w http.ResponseWriter, r *http.Request) {
	logs, err := h.auditLogUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", logs)
}
