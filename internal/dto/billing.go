package dto

// DueItemView is one outstanding due row prepared for rendering.
type DueItemView struct {
	ScheduleID  string  `json:"schedule_id"`
	DueDate     string  `json:"due_date"`
	Label       string  `json:"label"`
	AmountDue   float64 `json:"amount_due"`
	AmountPaid  float64 `json:"amount_paid"`
	Outstanding float64 `json:"outstanding"`
	Display     string  `json:"display"`
	Overdue     bool    `json:"overdue"`
}

// NextDueView is the compact "next due" card content.
type NextDueView struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// DueRiskView summarises the overdue share of outstanding dues.
type DueRiskView struct {
	Rate               float64 `json:"rate"`
	Level              string  `json:"level"`
	OverdueOutstanding float64 `json:"overdue_outstanding"`
	TotalOutstanding   float64 `json:"total_outstanding"`
}

// LedgerRowView is one ledger line for the billing-information table.
type LedgerRowView struct {
	Date           string  `json:"date"`
	Particulars    string  `json:"particulars"`
	Debit          float64 `json:"debit"`
	Credit         float64 `json:"credit"`
	RunningBalance float64 `json:"running_balance"`
}

// PaymentView is one posted payment in the history table.
type PaymentView struct {
	ORNumber    string `json:"or_number"`
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	PaymentMode string `json:"payment_mode"`
}

// BillingInformationResponse is the page payload for the billing view.
// Balance is intentionally not floored at zero here; a negative value is a
// credit balance owed back to the student.
type BillingInformationResponse struct {
	StudentID      string          `json:"student_id"`
	AcademicYearID string          `json:"academic_year_id,omitempty"`
	TotalCharges   float64         `json:"total_charges"`
	TotalCredits   float64         `json:"total_credits"`
	Balance        float64         `json:"balance"`
	BalanceDisplay string          `json:"balance_display"`
	Ledger         []LedgerRowView `json:"ledger"`
	Dues           []DueItemView   `json:"dues"`
	Timeline       []DueItemView   `json:"timeline"`
	NextDue        *NextDueView    `json:"next_due,omitempty"`
	Risk           DueRiskView     `json:"risk"`
	Payments       []PaymentView   `json:"payments"`
}
