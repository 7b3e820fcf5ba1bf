package employee

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                   string
	Name                 string
	Position             string
	Phone                *string
	SalaryType           SalaryType
	BaseSalary           decimal.Decimal
	WorkDays             int
	ShiftHours           float64
	ShiftStart           *string // "HH:MM"
	HourlyRate           decimal.Decimal
	Commission           decimal.Decimal // percentage 0-100
	LatePenaltyPerMinute decimal.Decimal
	AbsencePenaltyPerDay decimal.Decimal
	CustomDeductions     decimal.Decimal
	Allowances           decimal.Decimal
	Bonus                decimal.Decimal
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            *time.Time
}

type SalaryType string

const (
	SalaryTypeFixed  SalaryType = "fixed"
	SalaryTypeDaily  SalaryType = "daily"
	SalaryTypeHourly SalaryType = "hourly"
)

// ParseSalaryType accepts the stored English value or the Arabic label shown
// in the salon UI. Empty and unknown values fall back to fixed.
func ParseSalaryType(s string) SalaryType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "يومي":
		return SalaryTypeDaily
	case "hourly", "بالساعة":
		return SalaryTypeHourly
	default:
		return SalaryTypeFixed
	}
}

// Label returns the Arabic label used on payslips and reports.
func (t SalaryType) Label() string {
	switch t {
	case SalaryTypeDaily:
		return "يومي"
	case SalaryTypeHourly:
		return "بالساعة"
	default:
		return "ثابت"
	}
}
