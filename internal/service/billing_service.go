package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/scholaris-ph/sis-api/internal/dto"
	"github.com/scholaris-ph/sis-api/internal/models"
	"github.com/scholaris-ph/sis-api/pkg/format"
)

// Due-risk thresholds on the overdue share of outstanding dues, in percent.
// Boundary values belong to the higher tier: exactly 60.00 is Critical and
// exactly 30.00 is Warning.
const (
	dueRiskCriticalThreshold = 60.0
	dueRiskWarningThreshold  = 30.0
)

const dueTimelineLength = 4

type billingScheduleReader interface {
	ListOpenSchedules(ctx context.Context, studentID, academicYearID string) ([]models.BillingSchedule, error)
}

// BillingService evaluates billing schedules into due lists, the compact due
// timeline, the next-due card and the due-risk classification.
type BillingService struct {
	repo   billingScheduleReader
	logger *zap.Logger
	now    func() time.Time
}

// NewBillingService constructs a BillingService.
func NewBillingService(repo billingScheduleReader, logger *zap.Logger) *BillingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BillingService{repo: repo, logger: logger, now: time.Now}
}

// DueSummary bundles the evaluated due items with derived views.
type DueSummary struct {
	Dues     []dto.DueItemView
	Timeline []dto.DueItemView
	NextDue  *dto.NextDueView
	Risk     dto.DueRiskView
}

// Evaluate loads open schedules and derives the due views. Schedules whose
// outstanding amount is zero are dropped even when their status lags behind.
func (s *BillingService) Evaluate(ctx context.Context, studentID, academicYearID string) (DueSummary, error) {
	schedules, err := s.repo.ListOpenSchedules(ctx, studentID, academicYearID)
	if err != nil {
		return DueSummary{}, fmt.Errorf("evaluate billing schedules: %w", err)
	}
	return s.build(schedules), nil
}

func (s *BillingService) build(schedules []models.BillingSchedule) DueSummary {
	today := s.today()

	dues := make([]dto.DueItemView, 0, len(schedules))
	var totalOutstanding, overdueOutstanding float64
	for _, schedule := range schedules {
		outstanding := round2(schedule.Outstanding())
		if outstanding <= 0 {
			continue
		}
		overdue := schedule.DueDate != nil && schedule.DueDate.Before(today)
		dueDate := ""
		if schedule.DueDate != nil {
			dueDate = format.LedgerDate(*schedule.DueDate)
		}
		dues = append(dues, dto.DueItemView{
			ScheduleID:  schedule.ID,
			DueDate:     dueDate,
			Label:       format.DueLabel(schedule.DueDate),
			AmountDue:   round2(schedule.AmountDue),
			AmountPaid:  round2(schedule.AmountPaid),
			Outstanding: outstanding,
			Display:     format.Peso(outstanding),
			Overdue:     overdue,
		})
		totalOutstanding += outstanding
		if overdue {
			overdueOutstanding += outstanding
		}
	}

	summary := DueSummary{Dues: dues}
	if len(dues) > 0 {
		end := dueTimelineLength
		if len(dues) < end {
			end = len(dues)
		}
		summary.Timeline = dues[:end]
		summary.NextDue = &dto.NextDueView{
			Label:  dues[0].Label,
			Amount: format.Peso(dues[0].Outstanding),
		}
	}
	summary.Risk = classifyDueRisk(overdueOutstanding, totalOutstanding)
	return summary
}

// classifyDueRisk computes the overdue share of outstanding dues and maps it
// onto the fixed risk tiers. The level is decided on the rounded rate so the
// reported number and the tier never disagree.
func classifyDueRisk(overdueOutstanding, totalOutstanding float64) dto.DueRiskView {
	rate := 0.0
	if totalOutstanding > 0 {
		rate = round2(overdueOutstanding / totalOutstanding * 100)
	}
	level := models.DueRiskLow
	switch {
	case rate >= dueRiskCriticalThreshold:
		level = models.DueRiskCritical
	case rate >= dueRiskWarningThreshold:
		level = models.DueRiskWarning
	}
	return dto.DueRiskView{
		Rate:               rate,
		Level:              string(level),
		OverdueOutstanding: round2(overdueOutstanding),
		TotalOutstanding:   round2(totalOutstanding),
	}
}

func (s *BillingService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
