package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/scholaris-ph/sis-api/internal/dto"
	"github.com/scholaris-ph/sis-api/internal/models"
)

// Academic-risk thresholds on the current quarter average.
const (
	academicCriticalThreshold = 75.0
	academicWarningThreshold  = 80.0
)

const quartersPerYear = 4

type gradeReader interface {
	ListFinalGrades(ctx context.Context, enrollmentID string) ([]models.FinalGrade, error)
	ListConductRatings(ctx context.Context, enrollmentID string) ([]models.ConductRating, error)
}

// GradeService computes quarter averages, the general average and the
// quarter-over-quarter trend for an enrollment.
type GradeService struct {
	repo   gradeReader
	logger *zap.Logger
}

// NewGradeService constructs a GradeService.
func NewGradeService(repo gradeReader, logger *zap.Logger) *GradeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{repo: repo, logger: logger}
}

// Summary builds the academic summary for an enrollment. currentQuarter is
// clamped into [1, 4]. An enrollment with no grades yields null averages and
// a null trend, never an error.
func (s *GradeService) Summary(ctx context.Context, enrollmentID string, currentQuarter int) (*dto.GradeSummaryResponse, error) {
	if currentQuarter < 1 {
		currentQuarter = 1
	}
	if currentQuarter > quartersPerYear {
		currentQuarter = quartersPerYear
	}

	grades, err := s.repo.ListFinalGrades(ctx, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("load final grades: %w", err)
	}
	conduct, err := s.repo.ListConductRatings(ctx, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("load conduct ratings: %w", err)
	}

	averages := quarterAverages(grades)

	response := &dto.GradeSummaryResponse{
		EnrollmentID:   enrollmentID,
		CurrentQuarter: currentQuarter,
		GeneralAverage: generalAverage(averages),
		Trend:          quarterTrend(averages, currentQuarter),
		Subjects:       pivotSubjects(grades),
		Conduct:        conduct,
	}
	for quarter := 1; quarter <= quartersPerYear; quarter++ {
		response.QuarterAverages = append(response.QuarterAverages, dto.QuarterAverage{
			Quarter: quarter,
			Average: averages[quarter-1],
		})
	}
	return response, nil
}

// AcademicAlert derives the academic-risk alert from the current quarter
// average. A nil average or one at or above the warning threshold yields nil.
func (s *GradeService) AcademicAlert(summary *dto.GradeSummaryResponse) *dto.Alert {
	if summary == nil || summary.CurrentQuarter < 1 || summary.CurrentQuarter > quartersPerYear {
		return nil
	}
	average := summary.QuarterAverages[summary.CurrentQuarter-1].Average
	if average == nil {
		return nil
	}
	switch {
	case *average < academicCriticalThreshold:
		return &dto.Alert{
			Level:    dto.AlertCritical,
			Category: "academic",
			Message:  fmt.Sprintf("Current quarter average %.2f is below passing", *average),
		}
	case *average < academicWarningThreshold:
		return &dto.Alert{
			Level:    dto.AlertWarning,
			Category: "academic",
			Message:  fmt.Sprintf("Current quarter average %.2f is near the passing mark", *average),
		}
	}
	return nil
}

// quarterAverages computes the arithmetic mean per quarter, nil for quarters
// without any grade rows.
func quarterAverages(grades []models.FinalGrade) [quartersPerYear]*float64 {
	var sums [quartersPerYear]float64
	var counts [quartersPerYear]int
	for _, grade := range grades {
		if grade.Quarter < 1 || grade.Quarter > quartersPerYear {
			continue
		}
		sums[grade.Quarter-1] += grade.Grade
		counts[grade.Quarter-1]++
	}
	var averages [quartersPerYear]*float64
	for i := range sums {
		if counts[i] == 0 {
			continue
		}
		avg := round2(sums[i] / float64(counts[i]))
		averages[i] = &avg
	}
	return averages
}

// generalAverage is the mean of the populated quarter averages.
func generalAverage(averages [quartersPerYear]*float64) *float64 {
	sum := 0.0
	count := 0
	for _, avg := range averages {
		if avg == nil {
			continue
		}
		sum += *avg
		count++
	}
	if count == 0 {
		return nil
	}
	general := round2(sum / float64(count))
	return &general
}

// quarterTrend is the delta between the current and previous quarter
// averages. The first quarter has no predecessor, so its trend is nil.
func quarterTrend(averages [quartersPerYear]*float64, currentQuarter int) *float64 {
	if currentQuarter <= 1 {
		return nil
	}
	current := averages[currentQuarter-1]
	previous := averages[currentQuarter-2]
	if current == nil || previous == nil {
		return nil
	}
	trend := round2(*current - *previous)
	return &trend
}

// pivotSubjects reshapes the flat grade rows into one row per subject with a
// slot per quarter, sorted by subject name.
func pivotSubjects(grades []models.FinalGrade) []dto.SubjectGradeView {
	index := make(map[string]int)
	subjects := make([]dto.SubjectGradeView, 0)
	for _, grade := range grades {
		pos, ok := index[grade.SubjectAssignmentID]
		if !ok {
			pos = len(subjects)
			index[grade.SubjectAssignmentID] = pos
			subjects = append(subjects, dto.SubjectGradeView{
				SubjectAssignmentID: grade.SubjectAssignmentID,
				SubjectName:         grade.SubjectName,
			})
		}
		if grade.Quarter >= 1 && grade.Quarter <= quartersPerYear {
			value := grade.Grade
			subjects[pos].Quarters[grade.Quarter-1] = &value
		}
	}
	sort.Slice(subjects, func(i, j int) bool {
		return subjects[i].SubjectName < subjects[j].SubjectName
	})
	return subjects
}
