package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestLedgerRepositoryTotals(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLedgerRepository(db)

	rows := sqlmock.NewRows([]string{"total_charges", "total_credits"}).AddRow(15000.0, 5000.0)
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(debit\\), 0\\) AS total_charges").
		WithArgs("stu-1", "ay-1").
		WillReturnRows(rows)

	totals, err := repo.Totals(context.Background(), "stu-1", "ay-1")
	require.NoError(t, err)
	require.Equal(t, 15000.0, totals.TotalCharges)
	require.Equal(t, 5000.0, totals.TotalCredits)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepositoryTotalsUnscoped(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLedgerRepository(db)

	rows := sqlmock.NewRows([]string{"total_charges", "total_credits"}).AddRow(0.0, 0.0)
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(debit\\), 0\\) AS total_charges").
		WithArgs("stu-1").
		WillReturnRows(rows)

	totals, err := repo.Totals(context.Background(), "stu-1", "")
	require.NoError(t, err)
	require.Zero(t, totals.TotalCharges)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLedgerRepository(db)

	rows := sqlmock.NewRows([]string{"id", "student_id", "academic_year_id", "entry_date", "particulars", "debit", "credit", "running_balance"}).
		AddRow("le-1", "stu-1", "ay-1", time.Now(), "Tuition Fee", 5000.0, 0.0, 5000.0)
	mock.ExpectQuery(regexp.QuoteMeta("FROM ledger_entries WHERE student_id = $1 AND academic_year_id = $2 ORDER BY entry_date ASC, id ASC")).
		WithArgs("stu-1", "ay-1").
		WillReturnRows(rows)

	entries, err := repo.ListByStudent(context.Background(), "stu-1", "ay-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Tuition Fee", entries[0].Particulars)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepositoryDailyPaymentTotals(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLedgerRepository(db)

	from := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"day", "total"}).
		AddRow(time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC), 500.0)
	mock.ExpectQuery("DATE_TRUNC\\('day', created_at\\)").
		WithArgs("stu-1", from, to).
		WillReturnRows(rows)

	totals, err := repo.DailyPaymentTotals(context.Background(), "stu-1", from, to)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	require.Equal(t, 500.0, totals[0].Total)
	require.NoError(t, mock.ExpectationsWereMet())
}
