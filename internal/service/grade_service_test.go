package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholaris-ph/sis-api/internal/dto"
	"github.com/scholaris-ph/sis-api/internal/models"
)

type fakeGradeRepo struct {
	grades  []models.FinalGrade
	conduct []models.ConductRating
	err     error
}

func (f *fakeGradeRepo) ListFinalGrades(context.Context, string) ([]models.FinalGrade, error) {
	return f.grades, f.err
}

func (f *fakeGradeRepo) ListConductRatings(context.Context, string) ([]models.ConductRating, error) {
	return f.conduct, f.err
}

func gradeRow(subject string, quarter int, grade float64) models.FinalGrade {
	return models.FinalGrade{
		EnrollmentID:        "enr-1",
		SubjectAssignmentID: "sa-" + subject,
		SubjectName:         subject,
		Quarter:             quarter,
		Grade:               grade,
	}
}

func TestSummaryQuarterTrend(t *testing.T) {
	repo := &fakeGradeRepo{grades: []models.FinalGrade{
		gradeRow("Math", 1, 80),
		gradeRow("Math", 2, 86),
	}}
	svc := NewGradeService(repo, nil)

	summary, err := svc.Summary(context.Background(), "enr-1", 2)
	require.NoError(t, err)
	require.NotNil(t, summary.Trend)
	assert.Equal(t, 6.0, *summary.Trend)
}

func TestSummaryFirstQuarterHasNoTrend(t *testing.T) {
	repo := &fakeGradeRepo{grades: []models.FinalGrade{
		gradeRow("Math", 1, 80),
		gradeRow("Math", 2, 86),
	}}
	svc := NewGradeService(repo, nil)

	summary, err := svc.Summary(context.Background(), "enr-1", 1)
	require.NoError(t, err)
	assert.Nil(t, summary.Trend)
}

func TestSummaryQuarterAverages(t *testing.T) {
	repo := &fakeGradeRepo{grades: []models.FinalGrade{
		gradeRow("Math", 1, 80),
		gradeRow("Science", 1, 91),
		gradeRow("Math", 2, 86),
	}}
	svc := NewGradeService(repo, nil)

	summary, err := svc.Summary(context.Background(), "enr-1", 2)
	require.NoError(t, err)
	require.Len(t, summary.QuarterAverages, 4)
	require.NotNil(t, summary.QuarterAverages[0].Average)
	assert.Equal(t, 85.5, *summary.QuarterAverages[0].Average)
	require.NotNil(t, summary.QuarterAverages[1].Average)
	assert.Equal(t, 86.0, *summary.QuarterAverages[1].Average)
	assert.Nil(t, summary.QuarterAverages[2].Average)
	assert.Nil(t, summary.QuarterAverages[3].Average)

	require.NotNil(t, summary.GeneralAverage)
	assert.Equal(t, 85.75, *summary.GeneralAverage)
}

func TestSummaryNoGrades(t *testing.T) {
	svc := NewGradeService(&fakeGradeRepo{}, nil)

	summary, err := svc.Summary(context.Background(), "enr-1", 1)
	require.NoError(t, err)
	assert.Nil(t, summary.GeneralAverage)
	assert.Nil(t, summary.Trend)
	assert.Empty(t, summary.Subjects)
	for _, qa := range summary.QuarterAverages {
		assert.Nil(t, qa.Average)
	}
}

func TestSummarySubjectPivot(t *testing.T) {
	repo := &fakeGradeRepo{grades: []models.FinalGrade{
		gradeRow("Math", 1, 80),
		gradeRow("Math", 2, 86),
		gradeRow("English", 1, 88),
	}}
	svc := NewGradeService(repo, nil)

	summary, err := svc.Summary(context.Background(), "enr-1", 2)
	require.NoError(t, err)
	require.Len(t, summary.Subjects, 2)
	assert.Equal(t, "English", summary.Subjects[0].SubjectName)
	assert.Equal(t, "Math", summary.Subjects[1].SubjectName)
	require.NotNil(t, summary.Subjects[1].Quarters[0])
	assert.Equal(t, 80.0, *summary.Subjects[1].Quarters[0])
	require.NotNil(t, summary.Subjects[1].Quarters[1])
	assert.Equal(t, 86.0, *summary.Subjects[1].Quarters[1])
	assert.Nil(t, summary.Subjects[0].Quarters[1])
}

func TestAcademicAlertThresholds(t *testing.T) {
	svc := NewGradeService(&fakeGradeRepo{}, nil)

	cases := []struct {
		name    string
		average float64
		level   dto.AlertLevel
		none    bool
	}{
		{"below passing is critical", 74.99, dto.AlertCritical, false},
		{"near passing is warning", 79.99, dto.AlertWarning, false},
		{"exactly seventy five is warning", 75, dto.AlertWarning, false},
		{"exactly eighty is fine", 80, "", true},
		{"well above is fine", 92, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			average := tc.average
			summary := &dto.GradeSummaryResponse{
				CurrentQuarter: 1,
				QuarterAverages: []dto.QuarterAverage{
					{Quarter: 1, Average: &average},
					{Quarter: 2}, {Quarter: 3}, {Quarter: 4},
				},
			}
			alert := svc.AcademicAlert(summary)
			if tc.none {
				assert.Nil(t, alert)
				return
			}
			require.NotNil(t, alert)
			assert.Equal(t, tc.level, alert.Level)
		})
	}
}

func TestAcademicAlertNilAverage(t *testing.T) {
	svc := NewGradeService(&fakeGradeRepo{}, nil)
	summary := &dto.GradeSummaryResponse{
		CurrentQuarter: 1,
		QuarterAverages: []dto.QuarterAverage{
			{Quarter: 1}, {Quarter: 2}, {Quarter: 3}, {Quarter: 4},
		},
	}
	assert.Nil(t, svc.AcademicAlert(summary))
	assert.Nil(t, svc.AcademicAlert(nil))
}
