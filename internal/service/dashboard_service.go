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

type enrollmentResolver interface {
	CurrentByStudent(ctx context.Context, studentID string) (*models.EnrollmentContext, error)
}

type balanceProvider interface {
	OutstandingForDashboard(ctx context.Context, studentID, academicYearID string) (float64, error)
	PaymentTrend(ctx context.Context, studentID string, reference time.Time, days int) ([]dto.TrendPoint, error)
}

type dueEvaluator interface {
	Evaluate(ctx context.Context, studentID, academicYearID string) (DueSummary, error)
}

type gradeSummarizer interface {
	Summary(ctx context.Context, enrollmentID string, currentQuarter int) (*dto.GradeSummaryResponse, error)
	AcademicAlert(summary *dto.GradeSummaryResponse) *dto.Alert
}

// Dashboard cache keys share this prefix so a restore can sweep them with one
// pattern delete.
const (
	dashboardCacheKeyPrefix = "dashboard:student:"
	dashboardCachePattern   = dashboardCacheKeyPrefix + "*"
)

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL         time.Duration
	PaymentTrendDays int
}

// DashboardService composes the student dashboard payload from the ledger,
// billing and grade aggregations.
type DashboardService struct {
	enrollments enrollmentResolver
	ledger      balanceProvider
	billing     dueEvaluator
	grades      gradeSummarizer
	cache       *CacheService
	logger      *zap.Logger
	now         func() time.Time
	cfg         DashboardServiceConfig
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Enrollments enrollmentResolver
	Ledger      balanceProvider
	Billing     dueEvaluator
	Grades      gradeSummarizer
	Cache       *CacheService
	Logger      *zap.Logger
	Config      DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.PaymentTrendDays <= 0 {
		cfg.PaymentTrendDays = 7
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		enrollments: params.Enrollments,
		ledger:      params.Ledger,
		billing:     params.Billing,
		grades:      params.Grades,
		cache:       params.Cache,
		logger:      logger,
		now:         time.Now,
		cfg:         cfg,
	}
}

// Student builds the dashboard for one student and reports cache utilisation.
// A student with no enrollment or records still yields a complete payload
// with fallback values; the page always renders.
func (s *DashboardService) Student(ctx context.Context, studentID string) (*dto.StudentDashboardResponse, bool, error) {
	cacheKey := dashboardCacheKeyPrefix + studentID
	if s.cache.Enabled() {
		var cached dto.StudentDashboardResponse
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	response, err := s.compose(ctx, studentID)
	if err != nil {
		return nil, false, err
	}

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, cacheKey, response, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.String("student_id", studentID), zap.Error(err))
		}
	}
	return response, false, nil
}

func (s *DashboardService) compose(ctx context.Context, studentID string) (*dto.StudentDashboardResponse, error) {
	response := &dto.StudentDashboardResponse{StudentID: studentID}

	enrollment, err := s.enrollments.CurrentByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("compose dashboard: %w", err)
	}

	academicYearID := ""
	var gradeSummary *dto.GradeSummaryResponse
	if enrollment != nil {
		academicYearID = enrollment.AcademicYearID
		response.AcademicYearID = academicYearID
		gradeSummary, err = s.grades.Summary(ctx, enrollment.ID, currentQuarterFor(s.now()))
		if err != nil {
			return nil, fmt.Errorf("compose dashboard: %w", err)
		}
	}

	balance, err := s.ledger.OutstandingForDashboard(ctx, studentID, academicYearID)
	if err != nil {
		return nil, fmt.Errorf("compose dashboard: %w", err)
	}

	dues, err := s.billing.Evaluate(ctx, studentID, academicYearID)
	if err != nil {
		return nil, fmt.Errorf("compose dashboard: %w", err)
	}

	response.KPIs = s.kpiCards(balance, dues, gradeSummary)
	response.Alerts = s.synthesizeAlerts(dues, gradeSummary)
	response.Trends = s.trendBlocks(ctx, studentID, dues)
	response.ActionLinks = actionLinks()
	return response, nil
}

func (s *DashboardService) kpiCards(balance float64, dues DueSummary, gradeSummary *dto.GradeSummaryResponse) []dto.KPICard {
	nextDue := "No upcoming due"
	nextDueHint := ""
	if dues.NextDue != nil {
		nextDue = dues.NextDue.Amount
		nextDueHint = dues.NextDue.Label
	}

	generalAverage := "-"
	if gradeSummary != nil && gradeSummary.GeneralAverage != nil {
		generalAverage = fmt.Sprintf("%.2f", *gradeSummary.GeneralAverage)
	}

	trend := "-"
	if gradeSummary != nil && gradeSummary.Trend != nil {
		trend = fmt.Sprintf("%+.2f", *gradeSummary.Trend)
	}

	dueRisk := "-"
	dueRiskHint := ""
	if dues.Risk.TotalOutstanding > 0 {
		dueRisk = dues.Risk.Level
		dueRiskHint = fmt.Sprintf("%.2f%% overdue", dues.Risk.Rate)
	}

	return []dto.KPICard{
		{Key: "outstanding_balance", Label: "Outstanding Balance", Value: format.Peso(balance)},
		{Key: "next_due", Label: "Next Due", Value: nextDue, Hint: nextDueHint},
		{Key: "due_risk", Label: "Due Risk", Value: dueRisk, Hint: dueRiskHint},
		{Key: "general_average", Label: "General Average", Value: generalAverage},
		{Key: "grade_trend", Label: "Grade Trend", Value: trend},
	}
}

// synthesizeAlerts orders due-risk alerts ahead of academic alerts. When no
// condition triggers, a single stable info alert is emitted so the list is
// never empty.
func (s *DashboardService) synthesizeAlerts(dues DueSummary, gradeSummary *dto.GradeSummaryResponse) []dto.Alert {
	alerts := make([]dto.Alert, 0, 2)

	switch dues.Risk.Level {
	case string(models.DueRiskCritical):
		alerts = append(alerts, dto.Alert{
			Level:    dto.AlertCritical,
			Category: "billing",
			Message:  fmt.Sprintf("%.2f%% of outstanding dues are overdue", dues.Risk.Rate),
		})
	case string(models.DueRiskWarning):
		alerts = append(alerts, dto.Alert{
			Level:    dto.AlertWarning,
			Category: "billing",
			Message:  fmt.Sprintf("%.2f%% of outstanding dues are overdue", dues.Risk.Rate),
		})
	}

	if alert := s.grades.AcademicAlert(gradeSummary); alert != nil {
		alerts = append(alerts, *alert)
	}

	if len(alerts) == 0 {
		alerts = append(alerts, dto.Alert{
			Level:    dto.AlertInfo,
			Category: "general",
			Message:  "Account is in good standing",
		})
	}
	return alerts
}

func (s *DashboardService) trendBlocks(ctx context.Context, studentID string, dues DueSummary) []dto.TrendBlock {
	payments := dto.TrendBlock{Key: "payments", Label: "Payments (7 days)"}
	points, err := s.ledger.PaymentTrend(ctx, studentID, s.now(), s.cfg.PaymentTrendDays)
	if err != nil {
		s.logger.Warn("payment trend unavailable", zap.String("student_id", studentID), zap.Error(err))
		points = nil
	}
	if len(points) == 0 {
		payments.Fallback = "Trend unavailable"
	} else {
		payments.Points = points
	}

	timeline := dto.TrendBlock{Key: "due_timeline", Label: "Upcoming Dues"}
	if len(dues.Timeline) == 0 {
		timeline.Fallback = "No upcoming due"
	} else {
		for _, due := range dues.Timeline {
			timeline.Points = append(timeline.Points, dto.TrendPoint{Label: due.Label, Value: due.Outstanding})
		}
	}

	return []dto.TrendBlock{payments, timeline}
}

func actionLinks() []dto.ActionLink {
	return []dto.ActionLink{
		{Label: "View Billing", Href: "/billing"},
		{Label: "View Grades", Href: "/grades"},
		{Label: "Payment History", Href: "/billing#payments"},
	}
}

// currentQuarterFor maps a calendar month onto the school-year quarter.
// School years run June through March; quarters span two months each,
// with April and May folded into the fourth quarter.
func currentQuarterFor(now time.Time) int {
	switch now.Month() {
	case time.June, time.July, time.August:
		return 1
	case time.September, time.October, time.November:
		return 2
	case time.December, time.January:
		return 3
	default:
		return 4
	}
}
