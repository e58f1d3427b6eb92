package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/scholaris-ph/sis-api/internal/dto"
	"github.com/scholaris-ph/sis-api/internal/middleware"
	"github.com/scholaris-ph/sis-api/internal/models"
	appErrors "github.com/scholaris-ph/sis-api/pkg/errors"
	"github.com/scholaris-ph/sis-api/pkg/response"
)

type gradeService interface {
	Summary(ctx context.Context, enrollmentID string, currentQuarter int) (*dto.GradeSummaryResponse, error)
}

type enrollmentFinder interface {
	FindByID(ctx context.Context, id string) (*models.Enrollment, error)
}

// GradeHandler wires the grade service to HTTP endpoints.
type GradeHandler struct {
	service     gradeService
	enrollments enrollmentFinder
}

// NewGradeHandler constructs the handler.
func NewGradeHandler(service gradeService, enrollments enrollmentFinder) *GradeHandler {
	return &GradeHandler{service: service, enrollments: enrollments}
}

// Summary godoc
// @Summary Academic summary for an enrollment
// @Tags Grades
// @Produce json
// @Param enrollment_id path string true "Enrollment ID"
// @Param quarter query int false "Current quarter (1-4)" default(1)
// @Success 200 {object} response.Envelope
// @Router /enrollments/{enrollment_id}/grades [get]
func (h *GradeHandler) Summary(c *gin.Context) {
	enrollmentID := strings.TrimSpace(c.Param("enrollment_id"))
	if enrollmentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "enrollment_id is required"))
		return
	}
	quarter, err := strconv.Atoi(c.DefaultQuery("quarter", "1"))
	if err != nil || quarter < 1 || quarter > 4 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "quarter must be between 1 and 4"))
		return
	}

	// Students may only read their own enrollments. The route has no
	// :student_id parameter so the scope check resolves the owner here.
	if claims := middleware.CurrentClaims(c); claims != nil && claims.Role == models.RoleStudent {
		enrollment, err := h.enrollments.FindByID(c.Request.Context(), enrollmentID)
		if err != nil {
			response.Error(c, err)
			return
		}
		if enrollment == nil || enrollment.StudentID != claims.StudentID {
			response.Error(c, appErrors.ErrForbidden)
			return
		}
	}

	summary, err := h.service.Summary(c.Request.Context(), enrollmentID, quarter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
