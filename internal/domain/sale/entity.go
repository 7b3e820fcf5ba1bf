package sale

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a POS sale line attributed to a specialist.
type Sale struct {
	ID           string
	Specialist   string  // display name, as typed on the POS screen
	SpecialistID *string // set by newer POS clients
	Date         time.Time
	Amount       *decimal.Decimal
	Total        *decimal.Decimal
	InvoiceNo    *string
	CreatedAt    time.Time
}

// Value is the sale amount, falling back to the invoice total.
func (s Sale) Value() decimal.Decimal {
	if s.Amount != nil {
		return *s.Amount
	}
	if s.Total != nil {
		return *s.Total
	}
	return decimal.Zero
}

func (s Sale) InPeriod(month, year int) bool {
	return int(s.Date.Month()) == month && s.Date.Year() == year
}
