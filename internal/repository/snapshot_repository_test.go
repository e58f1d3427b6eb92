package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRepositoryExportTable(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSnapshotRepository(db)

	rows := sqlmock.NewRows([]string{"id", "value"}).
		AddRow("s-1", []byte("Scholaris Academy"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM settings")).WillReturnRows(rows)

	exported, err := repo.ExportTable(context.Background(), "settings")
	require.NoError(t, err)
	require.Len(t, exported, 1)
	require.Equal(t, "Scholaris Academy", exported[0]["value"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepositoryExportRejectsBadTableName(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSnapshotRepository(db)

	_, err := repo.ExportTable(context.Background(), "settings; DROP TABLE users")
	require.Error(t, err)
}

// Restores are not guarded against running concurrently; the last committed
// transaction wins. Each case below drives a single restore.
func TestSnapshotRepositoryRestoreTables(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSnapshotRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL session_replication_role = 'replica'")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("TRUNCATE TABLE settings")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO settings (key,value) VALUES ($1,$2)")).
		WithArgs("school_name", "Scholaris Academy").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL session_replication_role = 'origin'")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	restored, err := repo.RestoreTables(context.Background(), []string{"settings"}, map[string][]map[string]any{
		"settings": {{"key": "school_name", "value": "Scholaris Academy"}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, restored["settings"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepositoryRestoreRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSnapshotRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL session_replication_role = 'replica'")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("TRUNCATE TABLE settings")).
		WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	_, err := repo.RestoreTables(context.Background(), []string{"settings"}, map[string][]map[string]any{
		"settings": {{"key": "school_name", "value": "x"}},
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepositoryRestoreSkipsAbsentTables(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSnapshotRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL session_replication_role = 'replica'")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("TRUNCATE TABLE students")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL session_replication_role = 'origin'")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	restored, err := repo.RestoreTables(context.Background(), []string{"students", "transactions"}, map[string][]map[string]any{
		"students": {},
	})
	require.NoError(t, err)
	require.Equal(t, 0, restored["students"])
	require.NotContains(t, restored, "transactions")
	require.NoError(t, mock.ExpectationsWereMet())
}
