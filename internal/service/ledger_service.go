package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/scholaris-ph/sis-api/internal/dto"
	"github.com/scholaris-ph/sis-api/internal/models"
	"github.com/scholaris-ph/sis-api/pkg/format"
)

type ledgerReader interface {
	Totals(ctx context.Context, studentID, academicYearID string) (models.LedgerTotals, error)
	ListByStudent(ctx context.Context, studentID, academicYearID string) ([]models.LedgerEntry, error)
	ListPayments(ctx context.Context, studentID string, limit int) ([]models.Transaction, error)
	DailyPaymentTotals(ctx context.Context, studentID string, from, to time.Time) ([]models.DailyPaymentTotal, error)
}

// LedgerService aggregates ledger entries into outstanding balances and
// statement rows. Balances are always recomputed from debit/credit sums; the
// stored running balance is display-only.
type LedgerService struct {
	repo   ledgerReader
	logger *zap.Logger
}

// NewLedgerService constructs a LedgerService.
func NewLedgerService(repo ledgerReader, logger *zap.Logger) *LedgerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerService{repo: repo, logger: logger}
}

// round2 rounds to 2 decimal places with half-away-from-zero semantics.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Totals returns debit/credit sums for a student scope. A student with no
// ledger entries yields zero totals, never an error.
func (s *LedgerService) Totals(ctx context.Context, studentID, academicYearID string) (models.LedgerTotals, error) {
	totals, err := s.repo.Totals(ctx, studentID, academicYearID)
	if err != nil {
		return models.LedgerTotals{}, fmt.Errorf("aggregate ledger totals: %w", err)
	}
	return totals, nil
}

// OutstandingForDashboard computes the outstanding balance floored at zero.
// The dashboard never shows a credit balance.
func (s *LedgerService) OutstandingForDashboard(ctx context.Context, studentID, academicYearID string) (float64, error) {
	totals, err := s.Totals(ctx, studentID, academicYearID)
	if err != nil {
		return 0, err
	}
	balance := round2(totals.TotalCharges - totals.TotalCredits)
	if balance < 0 {
		return 0, nil
	}
	return balance, nil
}

// OutstandingForBilling computes the outstanding balance without flooring. A
// negative value is a credit balance and must stay visible on the billing
// page. Do not unify this with the dashboard variant.
func (s *LedgerService) OutstandingForBilling(ctx context.Context, studentID, academicYearID string) (models.LedgerTotals, float64, error) {
	totals, err := s.Totals(ctx, studentID, academicYearID)
	if err != nil {
		return models.LedgerTotals{}, 0, err
	}
	return totals, round2(totals.TotalCharges - totals.TotalCredits), nil
}

// StatementRows renders the ledger table for the billing-information view.
func (s *LedgerService) StatementRows(ctx context.Context, studentID, academicYearID string) ([]dto.LedgerRowView, error) {
	entries, err := s.repo.ListByStudent(ctx, studentID, academicYearID)
	if err != nil {
		return nil, fmt.Errorf("load ledger statement: %w", err)
	}
	rows := make([]dto.LedgerRowView, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, dto.LedgerRowView{
			Date:           format.LedgerDate(entry.EntryDate),
			Particulars:    entry.Particulars,
			Debit:          round2(entry.Debit),
			Credit:         round2(entry.Credit),
			RunningBalance: round2(entry.RunningBalance),
		})
	}
	return rows, nil
}

// PaymentHistory renders posted payments, newest first.
func (s *LedgerService) PaymentHistory(ctx context.Context, studentID string, limit int) ([]dto.PaymentView, error) {
	payments, err := s.repo.ListPayments(ctx, studentID, limit)
	if err != nil {
		return nil, fmt.Errorf("load payment history: %w", err)
	}
	views := make([]dto.PaymentView, 0, len(payments))
	for _, payment := range payments {
		views = append(views, dto.PaymentView{
			ORNumber:    payment.ORNumber,
			Date:        format.LedgerDate(payment.CreatedAt),
			Amount:      format.Peso(payment.TotalAmount),
			PaymentMode: payment.PaymentMode,
		})
	}
	return views, nil
}

// PaymentTrend buckets posted payments per day over the window ending at the
// reference time. Days without payments yield zero-valued points so the series
// always spans the full window.
func (s *LedgerService) PaymentTrend(ctx context.Context, studentID string, reference time.Time, days int) ([]dto.TrendPoint, error) {
	if days <= 0 {
		days = 7
	}
	// Midnight in the reference location, matching how due dates are compared.
	end := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, reference.Location()).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -days)

	totals, err := s.repo.DailyPaymentTotals(ctx, studentID, start, end)
	if err != nil {
		return nil, fmt.Errorf("load payment trend: %w", err)
	}
	if len(totals) == 0 {
		return nil, nil
	}

	byDay := make(map[string]float64, len(totals))
	for _, t := range totals {
		byDay[t.Day.Format("2006-01-02")] = t.Total
	}
	points := make([]dto.TrendPoint, 0, days)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		points = append(points, dto.TrendPoint{
			Label: d.Format("Jan 02"),
			Value: round2(byDay[d.Format("2006-01-02")]),
		})
	}
	return points, nil
}
