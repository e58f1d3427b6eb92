package models

import "time"

// BillingScheduleStatus enumerates the payment state of a due item.
type BillingScheduleStatus string

const (
	BillingUnpaid        BillingScheduleStatus = "unpaid"
	BillingPartiallyPaid BillingScheduleStatus = "partially_paid"
	BillingPaid          BillingScheduleStatus = "paid"
)

// BillingSchedule is a scheduled due item for a student and academic year.
type BillingSchedule struct {
	ID             string                `db:"id" json:"id"`
	StudentID      string                `db:"student_id" json:"student_id"`
	AcademicYearID string                `db:"academic_year_id" json:"academic_year_id"`
	DueDate        *time.Time            `db:"due_date" json:"due_date,omitempty"`
	AmountDue      float64               `db:"amount_due" json:"amount_due"`
	AmountPaid     float64               `db:"amount_paid" json:"amount_paid"`
	Status         BillingScheduleStatus `db:"status" json:"status"`
}

// Outstanding returns the unpaid remainder of the schedule, floored at zero.
func (b BillingSchedule) Outstanding() float64 {
	remaining := b.AmountDue - b.AmountPaid
	if remaining < 0 {
		return 0
	}
	return remaining
}

// DueRiskLevel classifies the share of overdue outstanding amounts.
type DueRiskLevel string

const (
	DueRiskCritical DueRiskLevel = "Critical"
	DueRiskWarning  DueRiskLevel = "Warning"
	DueRiskLow      DueRiskLevel = "Low"
)
