package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/scholaris-ph/sis-api/internal/models"
)

type auditWriter interface {
	Create(ctx context.Context, log *models.AuditLog) error
	List(ctx context.Context, page, pageSize int) ([]models.AuditLog, int, error)
}

// AuditEntry describes one action to record on the audit trail.
type AuditEntry struct {
	UserID     string
	Action     string
	Resource   string
	ResourceID string
	NewValues  any
	IPAddress  string
	UserAgent  string
}

// AuditService records audit trail entries. Writes are best-effort: a failed
// write is logged and counted but never interrupts the primary request.
type AuditService struct {
	repo    auditWriter
	metrics *MetricsService
	logger  *zap.Logger
}

// NewAuditService constructs an AuditService.
func NewAuditService(repo auditWriter, metrics *MetricsService, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{repo: repo, metrics: metrics, logger: logger}
}

// Record persists an audit entry, swallowing any failure.
func (s *AuditService) Record(ctx context.Context, entry AuditEntry) {
	if s == nil || s.repo == nil {
		return
	}

	log := &models.AuditLog{
		Action:    entry.Action,
		Resource:  entry.Resource,
		IPAddress: entry.IPAddress,
		UserAgent: entry.UserAgent,
	}
	if entry.UserID != "" {
		log.UserID = &entry.UserID
	}
	if entry.ResourceID != "" {
		log.ResourceID = &entry.ResourceID
	}
	if entry.NewValues != nil {
		payload, err := json.Marshal(entry.NewValues)
		if err != nil {
			s.logger.Warn("audit payload not serialisable", zap.String("action", entry.Action), zap.Error(err))
		} else {
			log.NewValues = payload
		}
	}

	if err := s.repo.Create(ctx, log); err != nil {
		if s.metrics != nil {
			s.metrics.RecordAuditDrop()
		}
		s.logger.Warn("audit log write failed",
			zap.String("action", entry.Action),
			zap.String("resource", entry.Resource),
			zap.Error(err))
	}
}

// List returns audit trail entries with pagination metadata.
func (s *AuditService) List(ctx context.Context, page, pageSize int) ([]models.AuditLog, *models.Pagination, error) {
	logs, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, nil, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return logs, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}
