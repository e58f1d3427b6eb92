package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/scholaris-ph/sis-api/internal/dto"
	"github.com/scholaris-ph/sis-api/internal/middleware"
	"github.com/scholaris-ph/sis-api/internal/service"
	appErrors "github.com/scholaris-ph/sis-api/pkg/errors"
	"github.com/scholaris-ph/sis-api/pkg/response"
)

type billingInfoService interface {
	Information(ctx context.Context, studentID string) (*dto.BillingInformationResponse, error)
}

type statementExporter interface {
	Statement(ctx context.Context, studentID, format, actorID string) (*service.ExportResult, error)
}

// BillingHandler wires billing services to HTTP endpoints.
type BillingHandler struct {
	billing billingInfoService
	exports statementExporter
}

// NewBillingHandler constructs the handler.
func NewBillingHandler(billing billingInfoService, exports statementExporter) *BillingHandler {
	return &BillingHandler{billing: billing, exports: exports}
}

// Information godoc
// @Summary Billing information for a student
// @Tags Billing
// @Produce json
// @Param student_id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{student_id}/billing [get]
func (h *BillingHandler) Information(c *gin.Context) {
	studentID := strings.TrimSpace(c.Param("student_id"))
	if studentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "student_id is required"))
		return
	}
	info, err := h.billing.Information(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, info, nil)
}

// ExportStatement godoc
// @Summary Export the student statement of account
// @Tags Billing
// @Produce octet-stream
// @Param student_id path string true "Student ID"
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Success 200 {file} binary
// @Router /students/{student_id}/billing/export [get]
func (h *BillingHandler) ExportStatement(c *gin.Context) {
	studentID := strings.TrimSpace(c.Param("student_id"))
	if studentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "student_id is required"))
		return
	}
	format := strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", "csv")))
	if format != "csv" && format != "pdf" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}

	actorID := ""
	if claims := middleware.CurrentClaims(c); claims != nil {
		actorID = claims.UserID
	}

	result, err := h.exports.Statement(c.Request.Context(), studentID, format, actorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
