package dto

import "github.com/scholaris-ph/sis-api/internal/models"

// QuarterAverage is the computed mean for one quarter, nil when no grades.
type QuarterAverage struct {
	Quarter int      `json:"quarter"`
	Average *float64 `json:"average"`
}

// SubjectGradeView is one subject row of the report card.
type SubjectGradeView struct {
	SubjectAssignmentID string      `json:"subject_assignment_id"`
	SubjectName         string      `json:"subject_name"`
	Quarters            [4]*float64 `json:"quarters"`
}

// GradeSummaryResponse is the academic summary for one enrollment.
type GradeSummaryResponse struct {
	EnrollmentID    string                 `json:"enrollment_id"`
	CurrentQuarter  int                    `json:"current_quarter"`
	QuarterAverages []QuarterAverage       `json:"quarter_averages"`
	GeneralAverage  *float64               `json:"general_average"`
	Trend           *float64               `json:"trend"`
	Subjects        []SubjectGradeView     `json:"subjects"`
	Conduct         []models.ConductRating `json:"conduct"`
}
