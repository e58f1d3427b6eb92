package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholaris-ph/sis-api/internal/dto"
)

type fakeDashboardService struct {
	resp     *dto.StudentDashboardResponse
	cacheHit bool
	err      error
}

func (f *fakeDashboardService) Student(context.Context, string) (*dto.StudentDashboardResponse, bool, error) {
	return f.resp, f.cacheHit, f.err
}

func setupDashboardRouter(svc dashboardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewDashboardHandler(svc)
	r.GET("/students/:student_id/dashboard", h.Student)
	return r
}

func TestDashboardHandlerStudent(t *testing.T) {
	svc := &fakeDashboardService{resp: &dto.StudentDashboardResponse{
		StudentID: "stu-1",
		Alerts:    []dto.Alert{{Level: dto.AlertInfo, Category: "general", Message: "Account is in good standing"}},
	}}
	r := setupDashboardRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/students/stu-1/dashboard", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data dto.StudentDashboardResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "stu-1", envelope.Data.StudentID)
	require.Len(t, envelope.Data.Alerts, 1)
}

func TestDashboardHandlerServiceError(t *testing.T) {
	r := setupDashboardRouter(&fakeDashboardService{err: errors.New("boom")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/students/stu-1/dashboard", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
