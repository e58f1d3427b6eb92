package handler

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/scholaris-ph/sis-api/internal/dto"
	"github.com/scholaris-ph/sis-api/internal/middleware"
	"github.com/scholaris-ph/sis-api/internal/models"
	appErrors "github.com/scholaris-ph/sis-api/pkg/errors"
	"github.com/scholaris-ph/sis-api/pkg/response"
	"github.com/scholaris-ph/sis-api/pkg/storage"
)

type backupService interface {
	Create(ctx context.Context, reason, actorID string) (*dto.BackupResponse, error)
	Restore(ctx context.Context, file, actorID string) *models.RestoreResult
	List() ([]string, error)
	Open(file string) (*os.File, error)
}

// BackupHandler wires the backup service to HTTP endpoints.
type BackupHandler struct {
	service  backupService
	signer   *storage.SignedURLSigner
	validate *validator.Validate
}

// NewBackupHandler constructs the handler.
func NewBackupHandler(service backupService, signer *storage.SignedURLSigner) *BackupHandler {
	return &BackupHandler{service: service, signer: signer, validate: validator.New()}
}

// Create godoc
// @Summary Create a database snapshot
// @Tags Backups
// @Accept json
// @Produce json
// @Param request body dto.CreateBackupRequest true "Backup reason"
// @Success 201 {object} response.Envelope
// @Router /backups [post]
func (h *BackupHandler) Create(c *gin.Context) {
	var req dto.CreateBackupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}

	actorID := ""
	if claims := middleware.CurrentClaims(c); claims != nil {
		actorID = claims.UserID
	}

	result, err := h.service.Create(c.Request.Context(), req.Reason, actorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.signer != nil {
		if token, _, err := h.signer.Generate(result.File, result.File); err == nil {
			result.DownloadURL = "/api/v1/backups/download?token=" + token
		}
	}
	response.Created(c, result)
}

// Restore godoc
// @Summary Restore a database snapshot
// @Tags Backups
// @Accept json
// @Produce json
// @Param request body dto.RestoreBackupRequest true "Snapshot file"
// @Success 200 {object} response.Envelope
// @Router /backups/restore [post]
func (h *BackupHandler) Restore(c *gin.Context) {
	var req dto.RestoreBackupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	if strings.Contains(req.File, "/") || strings.Contains(req.File, "..") {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid backup file name"))
		return
	}

	actorID := ""
	if claims := middleware.CurrentClaims(c); claims != nil {
		actorID = claims.UserID
	}

	result := h.service.Restore(c.Request.Context(), req.File, actorID)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	response.JSON(c, status, result, nil)
}

// List godoc
// @Summary List snapshot files
// @Tags Backups
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /backups [get]
func (h *BackupHandler) List(c *gin.Context) {
	files, err := h.service.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"files": files}, nil)
}

// Download godoc
// @Summary Download a snapshot via a signed token
// @Tags Backups
// @Produce octet-stream
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Router /backups/download [get]
func (h *BackupHandler) Download(c *gin.Context) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	_, relPath, _, err := h.signer.Parse(token)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download token"))
		return
	}

	file, err := h.service.Open(relPath)
	if err != nil {
		response.Error(c, appErrors.ErrNotFound)
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+relPath)
	c.DataFromReader(http.StatusOK, info.Size(), "application/json", file, nil)
}
