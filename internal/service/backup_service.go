package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/scholaris-ph/sis-api/internal/dto"
	"github.com/scholaris-ph/sis-api/internal/models"
)

// managedTables is the fixed set of tables included in snapshots, ordered so
// referenced tables restore before their dependents.
var managedTables = []string{
	"students",
	"academic_years",
	"enrollments",
	"ledger_entries",
	"billing_schedules",
	"transactions",
	"final_grades",
	"conduct_ratings",
	"settings",
}

const backupContext = "sis-api"

type snapshotStore interface {
	ExportTable(ctx context.Context, table string) ([]map[string]any, error)
	RestoreTables(ctx context.Context, order []string, tables map[string][]map[string]any) (map[string]int, error)
}

type settingsWriter interface {
	BulkUpsert(ctx context.Context, settings []models.Setting) error
}

type backupStorage interface {
	Save(filename string, data []byte) (string, error)
	Read(filename string) ([]byte, error)
	List() ([]string, error)
	Open(filename string) (*os.File, error)
}

// BackupService creates JSON snapshots of the managed tables and restores
// them transactionally.
type BackupService struct {
	snapshots snapshotStore
	settings  settingsWriter
	storage   backupStorage
	audit     *AuditService
	metrics   *MetricsService
	cache     *CacheService
	logger    *zap.Logger
	now       func() time.Time
}

// BackupServiceParams groups constructor dependencies.
type BackupServiceParams struct {
	Snapshots snapshotStore
	Settings  settingsWriter
	Storage   backupStorage
	Audit     *AuditService
	Metrics   *MetricsService
	Cache     *CacheService
	Logger    *zap.Logger
}

// NewBackupService constructs a BackupService.
func NewBackupService(params BackupServiceParams) *BackupService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupService{
		snapshots: params.Snapshots,
		settings:  params.Settings,
		storage:   params.Storage,
		audit:     params.Audit,
		metrics:   params.Metrics,
		cache:     params.Cache,
		logger:    logger,
		now:       time.Now,
	}
}

// Create snapshots every managed table into a timestamped JSON file and
// advances the latest-backup settings pointers.
func (s *BackupService) Create(ctx context.Context, reason, actorID string) (*dto.BackupResponse, error) {
	started := s.now()
	manifest := models.BackupManifest{
		GeneratedAt: started.UTC(),
		Reason:      reason,
		Context:     backupContext,
		Summary:     make(map[string]int, len(managedTables)),
		Tables:      make(map[string][]map[string]any, len(managedTables)),
	}

	for _, table := range managedTables {
		rows, err := s.snapshots.ExportTable(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", table, err)
		}
		manifest.Tables[table] = rows
		manifest.Summary[table] = len(rows)
	}

	payload, err := json.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("encode backup manifest: %w", err)
	}

	filename := fmt.Sprintf("backup_%s.json", started.UTC().Format("20060102_150405"))
	if _, err := s.storage.Save(filename, payload); err != nil {
		return nil, fmt.Errorf("write backup file: %w", err)
	}

	pointers := []models.Setting{
		{Key: models.SettingLatestBackupAt, Value: manifest.GeneratedAt.Format(time.RFC3339)},
		{Key: models.SettingLatestBackupFile, Value: filename},
		{Key: models.SettingLatestBackupReason, Value: reason},
	}
	if err := s.settings.BulkUpsert(ctx, pointers); err != nil {
		return nil, fmt.Errorf("update backup pointers: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordBackupDuration(s.now().Sub(started))
	}
	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.AuditActionBackupCreate,
		Resource:   "backups",
		ResourceID: filename,
	})
	s.logger.Info("backup created",
		zap.String("file", filename),
		zap.String("reason", reason),
		zap.Int("tables", len(manifest.Tables)))

	return &dto.BackupResponse{
		File:        filename,
		GeneratedAt: manifest.GeneratedAt,
		Reason:      reason,
		Summary:     manifest.Summary,
	}, nil
}

// Restore reloads the managed tables from the named snapshot file. Failures
// are reported in the result, never raised; the underlying transaction has
// rolled back by the time a failure result is returned. Snapshots without a
// tables map fall back to restoring settings key/value pairs only.
func (s *BackupService) Restore(ctx context.Context, file, actorID string) *models.RestoreResult {
	data, err := s.storage.Read(file)
	if err != nil {
		return s.failure(file, "backup file could not be read", err)
	}

	var manifest models.BackupManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return s.failure(file, "backup file is not valid JSON", err)
	}

	if len(manifest.Tables) == 0 {
		return s.restoreLegacySettings(ctx, file, actorID, data)
	}

	allowed := make(map[string]struct{}, len(managedTables))
	for _, table := range managedTables {
		allowed[table] = struct{}{}
	}
	tables := make(map[string][]map[string]any, len(manifest.Tables))
	for table, rows := range manifest.Tables {
		if _, ok := allowed[table]; !ok {
			s.logger.Warn("skipping unmanaged table in backup", zap.String("table", table), zap.String("file", file))
			continue
		}
		tables[table] = rows
	}

	restored, err := s.snapshots.RestoreTables(ctx, managedTables, tables)
	if err != nil {
		return s.failure(file, "restore failed and was rolled back", err)
	}

	// Reloaded tables invalidate every cached dashboard payload.
	if err := s.cache.Invalidate(ctx, dashboardCachePattern); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.String("file", file), zap.Error(err))
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.AuditActionBackupRestore,
		Resource:   "backups",
		ResourceID: file,
	})
	s.logger.Info("backup restored", zap.String("file", file), zap.Int("tables", len(restored)))
	return &models.RestoreResult{
		Success:  true,
		Message:  fmt.Sprintf("restored %d tables from %s", len(restored), file),
		Restored: restored,
	}
}

// restoreLegacySettings handles pre-manifest snapshot files that carried only
// settings key/value pairs. No other table is touched.
func (s *BackupService) restoreLegacySettings(ctx context.Context, file, actorID string, data []byte) *models.RestoreResult {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return s.failure(file, "backup file is not valid JSON", err)
	}
	if nested, ok := raw["settings"]; ok {
		data = nested
	}

	var pairs map[string]string
	if err := json.Unmarshal(data, &pairs); err != nil || len(pairs) == 0 {
		return s.failure(file, "backup contains no restorable tables", err)
	}

	settings := make([]models.Setting, 0, len(pairs))
	for key, value := range pairs {
		settings = append(settings, models.Setting{Key: key, Value: value})
	}
	if err := s.settings.BulkUpsert(ctx, settings); err != nil {
		return s.failure(file, "settings restore failed", err)
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.AuditActionBackupRestore,
		Resource:   "backups",
		ResourceID: file,
	})
	s.logger.Info("legacy settings restored", zap.String("file", file), zap.Int("settings", len(settings)))
	return &models.RestoreResult{
		Success:  true,
		Message:  fmt.Sprintf("restored %d settings from legacy backup %s", len(settings), file),
		Restored: map[string]int{"settings": len(settings)},
	}
}

// List returns the snapshot files currently on disk.
func (s *BackupService) List() ([]string, error) {
	return s.storage.List()
}

// Open returns a read handle for streaming a snapshot file to a client.
func (s *BackupService) Open(file string) (*os.File, error) {
	return s.storage.Open(file)
}

func (s *BackupService) failure(file, message string, err error) *models.RestoreResult {
	if s.metrics != nil {
		s.metrics.RecordRestoreFailure()
	}
	s.logger.Error("backup restore failed", zap.String("file", file), zap.Error(err))
	return &models.RestoreResult{Success: false, Message: message}
}
