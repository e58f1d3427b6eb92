package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/scholaris-ph/sis-api/internal/models"
)

// GradeRepository reads final grades and conduct ratings.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository constructs the repository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// ListFinalGrades returns every final grade row for an enrollment with the
// subject name resolved, ordered for report-card rendering.
func (r *GradeRepository) ListFinalGrades(ctx context.Context, enrollmentID string) ([]models.FinalGrade, error) {
	const query = `SELECT fg.id, fg.enrollment_id, fg.subject_assignment_id, s.name AS subject_name,
        fg.quarter, fg.grade, fg.is_locked
        FROM final_grades fg
        JOIN subject_assignments sa ON sa.id = fg.subject_assignment_id
        JOIN subjects s ON s.id = sa.subject_id
        WHERE fg.enrollment_id = $1
        ORDER BY fg.quarter ASC, s.name ASC`
	var grades []models.FinalGrade
	if err := r.db.SelectContext(ctx, &grades, query, enrollmentID); err != nil {
		return nil, fmt.Errorf("list final grades: %w", err)
	}
	return grades, nil
}

// ListConductRatings returns conduct ratings for an enrollment by quarter.
func (r *GradeRepository) ListConductRatings(ctx context.Context, enrollmentID string) ([]models.ConductRating, error) {
	const query = `SELECT id, enrollment_id, quarter, maka_diyos, maka_tao, maka_kalikasan, maka_bansa, remarks, is_locked
        FROM conduct_ratings WHERE enrollment_id = $1 ORDER BY quarter ASC`
	var ratings []models.ConductRating
	if err := r.db.SelectContext(ctx, &ratings, query, enrollmentID); err != nil {
		return nil, fmt.Errorf("list conduct ratings: %w", err)
	}
	return ratings, nil
}
