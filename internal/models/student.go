package models

import "time"

// AcademicYearStatus marks the lifecycle of a school year.
type AcademicYearStatus string

const (
	AcademicYearOngoing AcademicYearStatus = "ongoing"
	AcademicYearClosed  AcademicYearStatus = "closed"
)

// Student represents a learner record.
type Student struct {
	ID        string    `db:"id" json:"id"`
	LRN       string    `db:"lrn" json:"lrn"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AcademicYear represents one school year.
type AcademicYear struct {
	ID        string             `db:"id" json:"id"`
	Name      string             `db:"name" json:"name"`
	Status    AcademicYearStatus `db:"status" json:"status"`
	StartsOn  time.Time          `db:"starts_on" json:"starts_on"`
	EndsOn    time.Time          `db:"ends_on" json:"ends_on"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
}

// Enrollment links a student to an academic year, grade level and section.
type Enrollment struct {
	ID             string    `db:"id" json:"id"`
	StudentID      string    `db:"student_id" json:"student_id"`
	AcademicYearID string    `db:"academic_year_id" json:"academic_year_id"`
	GradeLevel     string    `db:"grade_level" json:"grade_level"`
	SectionID      string    `db:"section_id" json:"section_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// EnrollmentContext carries the resolved current enrollment with its year.
type EnrollmentContext struct {
	Enrollment
	AcademicYearName   string             `db:"academic_year_name" json:"academic_year_name"`
	AcademicYearStatus AcademicYearStatus `db:"academic_year_status" json:"academic_year_status"`
}
