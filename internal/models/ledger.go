package models

import "time"

// LedgerEntry is one debit/credit row in a student ledger. The running
// balance column is display-only; the outstanding balance is always
// recomputed from the debit and credit sums.
type LedgerEntry struct {
	ID             string    `db:"id" json:"id"`
	StudentID      string    `db:"student_id" json:"student_id"`
	AcademicYearID string    `db:"academic_year_id" json:"academic_year_id"`
	EntryDate      time.Time `db:"entry_date" json:"entry_date"`
	Particulars    string    `db:"particulars" json:"particulars"`
	Debit          float64   `db:"debit" json:"debit"`
	Credit         float64   `db:"credit" json:"credit"`
	RunningBalance float64   `db:"running_balance" json:"running_balance"`
}

// LedgerTotals aggregates debit/credit sums for a student scope.
type LedgerTotals struct {
	TotalCharges float64 `db:"total_charges" json:"total_charges"`
	TotalCredits float64 `db:"total_credits" json:"total_credits"`
}

// Transaction is an immutable posted payment.
type Transaction struct {
	ID          string    `db:"id" json:"id"`
	ORNumber    string    `db:"or_number" json:"or_number"`
	StudentID   string    `db:"student_id" json:"student_id"`
	CashierID   string    `db:"cashier_id" json:"cashier_id"`
	TotalAmount float64   `db:"total_amount" json:"total_amount"`
	PaymentMode string    `db:"payment_mode" json:"payment_mode"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// DailyPaymentTotal is one day bucket of posted payment amounts.
type DailyPaymentTotal struct {
	Day   time.Time `db:"day" json:"day"`
	Total float64   `db:"total" json:"total"`
}
