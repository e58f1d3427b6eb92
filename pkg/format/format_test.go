package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeso(t *testing.T) {
	assert.Equal(t, "PHP 1,234.50", Peso(1234.5))
	assert.Equal(t, "PHP 0.00", Peso(0))
	assert.Equal(t, "PHP 1,000,000.00", Peso(1000000))
	assert.Equal(t, "PHP -250.75", Peso(-250.75))
}

func TestDueLabel(t *testing.T) {
	due := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Jun 15", DueLabel(&due))

	early := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Mar 05", DueLabel(&early))

	assert.Equal(t, "No date", DueLabel(nil))
}

func TestLedgerDate(t *testing.T) {
	day := time.Date(2025, time.January, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "01/09/2025", LedgerDate(day))
}
