package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/scholaris-ph/sis-api/internal/models"
)

// LedgerRepository reads student ledger entries and posted payments.
type LedgerRepository struct {
	db *sqlx.DB
}

// NewLedgerRepository constructs the repository.
func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Totals sums debit and credit columns for a student, optionally scoped to
// one academic year. Students without entries yield zero totals.
func (r *LedgerRepository) Totals(ctx context.Context, studentID, academicYearID string) (models.LedgerTotals, error) {
	query := `SELECT COALESCE(SUM(debit), 0) AS total_charges, COALESCE(SUM(credit), 0) AS total_credits
        FROM ledger_entries WHERE student_id = $1`
	args := []interface{}{studentID}
	if academicYearID != "" {
		query += " AND academic_year_id = $2"
		args = append(args, academicYearID)
	}
	var totals models.LedgerTotals
	if err := r.db.GetContext(ctx, &totals, query, args...); err != nil {
		return models.LedgerTotals{}, fmt.Errorf("ledger totals: %w", err)
	}
	return totals, nil
}

// ListByStudent returns ledger rows ordered the way the statement renders them.
func (r *LedgerRepository) ListByStudent(ctx context.Context, studentID, academicYearID string) ([]models.LedgerEntry, error) {
	query := `SELECT id, student_id, academic_year_id, entry_date, particulars, debit, credit, running_balance
        FROM ledger_entries WHERE student_id = $1`
	args := []interface{}{studentID}
	if academicYearID != "" {
		query += " AND academic_year_id = $2"
		args = append(args, academicYearID)
	}
	query += " ORDER BY entry_date ASC, id ASC"
	var entries []models.LedgerEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	return entries, nil
}

// ListPayments returns posted transactions, newest first.
func (r *LedgerRepository) ListPayments(ctx context.Context, studentID string, limit int) ([]models.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := fmt.Sprintf(`SELECT id, or_number, student_id, cashier_id, total_amount, payment_mode, created_at
        FROM transactions WHERE student_id = $1 ORDER BY created_at DESC LIMIT %d`, limit)
	var payments []models.Transaction
	if err := r.db.SelectContext(ctx, &payments, query, studentID); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// DailyPaymentTotals buckets posted payment amounts per day inside [from, to).
func (r *LedgerRepository) DailyPaymentTotals(ctx context.Context, studentID string, from, to time.Time) ([]models.DailyPaymentTotal, error) {
	const query = `SELECT DATE_TRUNC('day', created_at) AS day, COALESCE(SUM(total_amount), 0) AS total
        FROM transactions
        WHERE student_id = $1 AND created_at >= $2 AND created_at < $3
        GROUP BY DATE_TRUNC('day', created_at)
        ORDER BY day ASC`
	var totals []models.DailyPaymentTotal
	if err := r.db.SelectContext(ctx, &totals, query, studentID, from, to); err != nil {
		return nil, fmt.Errorf("daily payment totals: %w", err)
	}
	return totals, nil
}
