package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/scholaris-ph/sis-api/internal/models"
)

// EnrollmentRepository resolves student enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// CurrentByStudent resolves the current enrollment for a student: the one in
// the ongoing academic year when present, otherwise the latest by id.
// Returns nil without error when the student has no enrollment at all.
func (r *EnrollmentRepository) CurrentByStudent(ctx context.Context, studentID string) (*models.EnrollmentContext, error) {
	const query = `SELECT e.id, e.student_id, e.academic_year_id, e.grade_level, e.section_id, e.created_at,
        y.name AS academic_year_name, y.status AS academic_year_status
        FROM enrollments e
        JOIN academic_years y ON y.id = e.academic_year_id
        WHERE e.student_id = $1
        ORDER BY (y.status = $2) DESC, e.id DESC
        LIMIT 1`
	var current models.EnrollmentContext
	if err := r.db.GetContext(ctx, &current, query, studentID, models.AcademicYearOngoing); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve current enrollment: %w", err)
	}
	return &current, nil
}

// FindByID returns an enrollment by its ID, or nil when it does not exist.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id string) (*models.Enrollment, error) {
	const query = `SELECT id, student_id, academic_year_id, grade_level, section_id, created_at
        FROM enrollments WHERE id = $1`
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return &enrollment, nil
}
