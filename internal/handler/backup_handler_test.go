package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholaris-ph/sis-api/internal/dto"
	"github.com/scholaris-ph/sis-api/internal/models"
	"github.com/scholaris-ph/sis-api/pkg/storage"
)

type fakeBackupService struct {
	created *dto.BackupResponse
	restore *models.RestoreResult
	files   []string
	err     error
}

func (f *fakeBackupService) Create(context.Context, string, string) (*dto.BackupResponse, error) {
	return f.created, f.err
}

func (f *fakeBackupService) Restore(context.Context, string, string) *models.RestoreResult {
	return f.restore
}

func (f *fakeBackupService) List() ([]string, error) {
	return f.files, f.err
}

func (f *fakeBackupService) Open(string) (*os.File, error) {
	return nil, os.ErrNotExist
}

func setupBackupRouter(svc backupService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewBackupHandler(svc, storage.NewSignedURLSigner("test-secret", time.Minute))
	r.POST("/backups", h.Create)
	r.POST("/backups/restore", h.Restore)
	r.GET("/backups", h.List)
	return r
}

func TestBackupHandlerCreate(t *testing.T) {
	svc := &fakeBackupService{created: &dto.BackupResponse{
		File:    "backup_20250615_000000.json",
		Reason:  "scheduled",
		Summary: map[string]int{"students": 1},
	}}
	r := setupBackupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/backups", strings.NewReader(`{"reason":"scheduled"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "backup_20250615_000000.json")
	assert.Contains(t, w.Body.String(), "download_url")
}

func TestBackupHandlerCreateRequiresReason(t *testing.T) {
	r := setupBackupRouter(&fakeBackupService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/backups", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBackupHandlerRestoreFailureReturns422(t *testing.T) {
	svc := &fakeBackupService{restore: &models.RestoreResult{Success: false, Message: "backup file is not valid JSON"}}
	r := setupBackupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/backups/restore", strings.NewReader(`{"file":"broken.json"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "not valid JSON")
}

func TestBackupHandlerRestoreRejectsPathTraversal(t *testing.T) {
	r := setupBackupRouter(&fakeBackupService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/backups/restore", strings.NewReader(`{"file":"../../etc/passwd"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBackupHandlerRestoreSuccess(t *testing.T) {
	svc := &fakeBackupService{restore: &models.RestoreResult{
		Success:  true,
		Message:  "restored 9 tables from snap.json",
		Restored: map[string]int{"students": 3},
	}}
	r := setupBackupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/backups/restore", strings.NewReader(`{"file":"snap.json"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
