package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/scholaris-ph/sis-api/internal/models"
)

// BillingRepository reads billing schedules.
type BillingRepository struct {
	db *sqlx.DB
}

// NewBillingRepository constructs the repository.
func NewBillingRepository(db *sqlx.DB) *BillingRepository {
	return &BillingRepository{db: db}
}

// ListOpenSchedules returns unpaid and partially paid schedules for a student
// ordered by due date ascending. Fully paid rows never leave the database.
func (r *BillingRepository) ListOpenSchedules(ctx context.Context, studentID, academicYearID string) ([]models.BillingSchedule, error) {
	query := `SELECT id, student_id, academic_year_id, due_date, amount_due, amount_paid, status
        FROM billing_schedules
        WHERE student_id = $1 AND status IN ($2, $3)`
	args := []interface{}{studentID, models.BillingUnpaid, models.BillingPartiallyPaid}
	if academicYearID != "" {
		query += fmt.Sprintf(" AND academic_year_id = $%d", len(args)+1)
		args = append(args, academicYearID)
	}
	query += " ORDER BY due_date ASC NULLS LAST, id ASC"
	var schedules []models.BillingSchedule
	if err := r.db.SelectContext(ctx, &schedules, query, args...); err != nil {
		return nil, fmt.Errorf("list open schedules: %w", err)
	}
	return schedules, nil
}
