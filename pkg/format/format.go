package format

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pesoPrinter = message.NewPrinter(language.English)

// Peso renders an amount with the fixed "PHP " prefix, thousands separators
// and two decimal places, e.g. 1234.5 -> "PHP 1,234.50".
func Peso(amount float64) string {
	return pesoPrinter.Sprintf("PHP %.2f", amount)
}

// DueLabel renders a compact "Mon DD" label for due timelines, or "No date"
// when the due date is unknown.
func DueLabel(due *time.Time) string {
	if due == nil {
		return "No date"
	}
	return due.Format("Jan 02")
}

// LedgerDate renders the MM/DD/YYYY form used by ledger and dues tables.
func LedgerDate(t time.Time) string {
	return t.Format("01/02/2006")
}
