package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholaris-ph/sis-api/internal/models"
	appErrors "github.com/scholaris-ph/sis-api/pkg/errors"
)

type fakeSnapshotStore struct {
	exports    map[string][]map[string]any
	restored   map[string][]map[string]any
	exportErr  error
	restoreErr error
}

func (f *fakeSnapshotStore) ExportTable(_ context.Context, table string) ([]map[string]any, error) {
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	return f.exports[table], nil
}

func (f *fakeSnapshotStore) RestoreTables(_ context.Context, order []string, tables map[string][]map[string]any) (map[string]int, error) {
	if f.restoreErr != nil {
		return nil, f.restoreErr
	}
	f.restored = tables
	counts := make(map[string]int, len(tables))
	for table, rows := range tables {
		counts[table] = len(rows)
	}
	return counts, nil
}

type fakeSettingsWriter struct {
	upserted []models.Setting
	err      error
}

func (f *fakeSettingsWriter) BulkUpsert(_ context.Context, settings []models.Setting) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, settings...)
	return nil
}

type fakeBackupStorage struct {
	files   map[string][]byte
	saveErr error
}

func newFakeBackupStorage() *fakeBackupStorage {
	return &fakeBackupStorage{files: map[string][]byte{}}
}

func (f *fakeBackupStorage) Save(filename string, data []byte) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.files[filename] = data
	return filename, nil
}

func (f *fakeBackupStorage) Read(filename string) ([]byte, error) {
	data, ok := f.files[filename]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (f *fakeBackupStorage) List() ([]string, error) {
	names := make([]string, 0, len(f.files))
	for name := range f.files {
		names = append(names, name)
	}
	return names, nil
}

func (f *fakeBackupStorage) Open(string) (*os.File, error) {
	return nil, os.ErrNotExist
}

type fakeCacheStore struct {
	patterns []string
}

func (f *fakeCacheStore) Get(context.Context, string, interface{}) error {
	return appErrors.ErrCacheMiss
}

func (f *fakeCacheStore) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}

func (f *fakeCacheStore) DeleteByPattern(_ context.Context, pattern string) error {
	f.patterns = append(f.patterns, pattern)
	return nil
}

func newTestBackupService(snapshots *fakeSnapshotStore, settings *fakeSettingsWriter, store *fakeBackupStorage) *BackupService {
	return NewBackupService(BackupServiceParams{
		Snapshots: snapshots,
		Settings:  settings,
		Storage:   store,
	})
}

func TestCreateSnapshotsAllManagedTables(t *testing.T) {
	snapshots := &fakeSnapshotStore{exports: map[string][]map[string]any{
		"students":       {{"id": "stu-1", "lrn": "123"}},
		"ledger_entries": {{"id": "le-1", "debit": 100.0}, {"id": "le-2", "credit": 50.0}},
	}}
	settings := &fakeSettingsWriter{}
	store := newFakeBackupStorage()
	svc := newTestBackupService(snapshots, settings, store)

	result, err := svc.Create(context.Background(), "pre-enrollment cutoff", "usr-1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.File)
	assert.Equal(t, 1, result.Summary["students"])
	assert.Equal(t, 2, result.Summary["ledger_entries"])
	assert.Len(t, result.Summary, len(managedTables))

	raw, ok := store.files[result.File]
	require.True(t, ok)
	var manifest models.BackupManifest
	require.NoError(t, json.Unmarshal(raw, &manifest))
	assert.Equal(t, "pre-enrollment cutoff", manifest.Reason)
	assert.Len(t, manifest.Tables, len(managedTables))

	keys := make(map[string]string, len(settings.upserted))
	for _, setting := range settings.upserted {
		keys[setting.Key] = setting.Value
	}
	assert.Equal(t, result.File, keys[models.SettingLatestBackupFile])
	assert.Equal(t, "pre-enrollment cutoff", keys[models.SettingLatestBackupReason])
	assert.NotEmpty(t, keys[models.SettingLatestBackupAt])
}

func TestRestoreRoundTrip(t *testing.T) {
	snapshots := &fakeSnapshotStore{exports: map[string][]map[string]any{
		"students":     {{"id": "stu-1"}},
		"transactions": {{"id": "tx-1", "total_amount": 500.0}},
	}}
	store := newFakeBackupStorage()
	svc := newTestBackupService(snapshots, &fakeSettingsWriter{}, store)

	created, err := svc.Create(context.Background(), "round trip", "usr-1")
	require.NoError(t, err)

	result := svc.Restore(context.Background(), created.File, "usr-1")
	require.True(t, result.Success)
	assert.Equal(t, 1, result.Restored["students"])
	assert.Equal(t, 1, result.Restored["transactions"])
	assert.Len(t, snapshots.restored, len(managedTables))
}

func TestRestoreMalformedJSON(t *testing.T) {
	snapshots := &fakeSnapshotStore{}
	store := newFakeBackupStorage()
	store.files["broken.json"] = []byte("{not-json")
	svc := newTestBackupService(snapshots, &fakeSettingsWriter{}, store)

	result := svc.Restore(context.Background(), "broken.json", "usr-1")
	require.False(t, result.Success)
	assert.Nil(t, snapshots.restored)
}

func TestRestoreMissingFile(t *testing.T) {
	svc := newTestBackupService(&fakeSnapshotStore{}, &fakeSettingsWriter{}, newFakeBackupStorage())

	result := svc.Restore(context.Background(), "nope.json", "usr-1")
	require.False(t, result.Success)
}

func TestRestoreRollbackReportedAsFailure(t *testing.T) {
	snapshots := &fakeSnapshotStore{restoreErr: errors.New("insert failed")}
	store := newFakeBackupStorage()
	manifest := models.BackupManifest{Tables: map[string][]map[string]any{
		"students": {{"id": "stu-1"}},
	}}
	raw, err := json.Marshal(manifest)
	require.NoError(t, err)
	store.files["snap.json"] = raw
	svc := newTestBackupService(snapshots, &fakeSettingsWriter{}, store)

	result := svc.Restore(context.Background(), "snap.json", "usr-1")
	require.False(t, result.Success)
	assert.Contains(t, result.Message, "rolled back")
}

func TestRestoreSkipsUnmanagedTables(t *testing.T) {
	snapshots := &fakeSnapshotStore{}
	store := newFakeBackupStorage()
	manifest := models.BackupManifest{Tables: map[string][]map[string]any{
		"students":     {{"id": "stu-1"}},
		"pg_shadow":    {{"usename": "postgres"}},
		"transactions": {{"id": "tx-1"}},
	}}
	raw, err := json.Marshal(manifest)
	require.NoError(t, err)
	store.files["snap.json"] = raw
	svc := newTestBackupService(snapshots, &fakeSettingsWriter{}, store)

	result := svc.Restore(context.Background(), "snap.json", "usr-1")
	require.True(t, result.Success)
	assert.Contains(t, snapshots.restored, "students")
	assert.Contains(t, snapshots.restored, "transactions")
	assert.NotContains(t, snapshots.restored, "pg_shadow")
}

func TestRestoreInvalidatesDashboardCache(t *testing.T) {
	store := newFakeBackupStorage()
	manifest := models.BackupManifest{Tables: map[string][]map[string]any{
		"students": {{"id": "stu-1"}},
	}}
	raw, err := json.Marshal(manifest)
	require.NoError(t, err)
	store.files["snap.json"] = raw

	cacheStore := &fakeCacheStore{}
	svc := NewBackupService(BackupServiceParams{
		Snapshots: &fakeSnapshotStore{},
		Settings:  &fakeSettingsWriter{},
		Storage:   store,
		Cache:     NewCacheService(cacheStore, nil, time.Minute, nil, true),
	})

	result := svc.Restore(context.Background(), "snap.json", "usr-1")
	require.True(t, result.Success)
	require.Len(t, cacheStore.patterns, 1)
	assert.Equal(t, "dashboard:student:*", cacheStore.patterns[0])
}

func TestRestoreLegacySettingsOnly(t *testing.T) {
	snapshots := &fakeSnapshotStore{}
	settings := &fakeSettingsWriter{}
	store := newFakeBackupStorage()
	store.files["legacy.json"] = []byte(`{"school_name":"Scholaris Academy","school_year":"2024-2025"}`)
	svc := newTestBackupService(snapshots, settings, store)

	result := svc.Restore(context.Background(), "legacy.json", "usr-1")
	require.True(t, result.Success)
	assert.Equal(t, 2, result.Restored["settings"])
	assert.Nil(t, snapshots.restored)
	assert.Len(t, settings.upserted, 2)
}

func TestRestoreLegacyNestedSettings(t *testing.T) {
	settings := &fakeSettingsWriter{}
	store := newFakeBackupStorage()
	store.files["legacy.json"] = []byte(`{"generated_at":"2024-01-01T00:00:00Z","settings":{"school_name":"Scholaris Academy"}}`)
	svc := newTestBackupService(&fakeSnapshotStore{}, settings, store)

	result := svc.Restore(context.Background(), "legacy.json", "usr-1")
	require.True(t, result.Success)
	assert.Equal(t, 1, result.Restored["settings"])
}

func TestRestoreLegacyNoRestorableContent(t *testing.T) {
	store := newFakeBackupStorage()
	store.files["empty.json"] = []byte(`{}`)
	svc := newTestBackupService(&fakeSnapshotStore{}, &fakeSettingsWriter{}, store)

	result := svc.Restore(context.Background(), "empty.json", "usr-1")
	require.False(t, result.Success)
}
