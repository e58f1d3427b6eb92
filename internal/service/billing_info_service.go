package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/scholaris-ph/sis-api/internal/dto"
	"github.com/scholaris-ph/sis-api/internal/models"
	"github.com/scholaris-ph/sis-api/pkg/format"
)

type statementProvider interface {
	OutstandingForBilling(ctx context.Context, studentID, academicYearID string) (models.LedgerTotals, float64, error)
	StatementRows(ctx context.Context, studentID, academicYearID string) ([]dto.LedgerRowView, error)
	PaymentHistory(ctx context.Context, studentID string, limit int) ([]dto.PaymentView, error)
}

// BillingInfoService composes the billing-information page payload from the
// ledger statement, the due evaluation and the payment history.
type BillingInfoService struct {
	enrollments   enrollmentResolver
	ledger        statementProvider
	billing       dueEvaluator
	logger        *zap.Logger
	paymentsLimit int
}

// BillingInfoServiceParams groups constructor dependencies.
type BillingInfoServiceParams struct {
	Enrollments   enrollmentResolver
	Ledger        statementProvider
	Billing       dueEvaluator
	Logger        *zap.Logger
	PaymentsLimit int
}

// NewBillingInfoService constructs a BillingInfoService.
func NewBillingInfoService(params BillingInfoServiceParams) *BillingInfoService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := params.PaymentsLimit
	if limit <= 0 {
		limit = 20
	}
	return &BillingInfoService{
		enrollments:   params.Enrollments,
		ledger:        params.Ledger,
		billing:       params.Billing,
		logger:        logger,
		paymentsLimit: limit,
	}
}

// Information builds the billing page payload. Unlike the dashboard balance,
// the balance here is not floored at zero; a negative value is a credit
// owed back to the student and must stay visible.
func (s *BillingInfoService) Information(ctx context.Context, studentID string) (*dto.BillingInformationResponse, error) {
	response := &dto.BillingInformationResponse{StudentID: studentID}

	enrollment, err := s.enrollments.CurrentByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("billing information: %w", err)
	}
	academicYearID := ""
	if enrollment != nil {
		academicYearID = enrollment.AcademicYearID
		response.AcademicYearID = academicYearID
	}

	totals, balance, err := s.ledger.OutstandingForBilling(ctx, studentID, academicYearID)
	if err != nil {
		return nil, fmt.Errorf("billing information: %w", err)
	}
	response.TotalCharges = totals.TotalCharges
	response.TotalCredits = totals.TotalCredits
	response.Balance = balance
	response.BalanceDisplay = format.Peso(balance)

	response.Ledger, err = s.ledger.StatementRows(ctx, studentID, academicYearID)
	if err != nil {
		return nil, fmt.Errorf("billing information: %w", err)
	}

	dues, err := s.billing.Evaluate(ctx, studentID, academicYearID)
	if err != nil {
		return nil, fmt.Errorf("billing information: %w", err)
	}
	response.Dues = dues.Dues
	response.Timeline = dues.Timeline
	response.NextDue = dues.NextDue
	response.Risk = dues.Risk

	response.Payments, err = s.ledger.PaymentHistory(ctx, studentID, s.paymentsLimit)
	if err != nil {
		return nil, fmt.Errorf("billing information: %w", err)
	}
	return response, nil
}
