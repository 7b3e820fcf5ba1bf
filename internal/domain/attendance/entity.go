package attendance

import (
	"time"
)

// Record is one employee's attendance on one calendar day.
// Duplicate (EmployeeID, Date) records are kept as-is and count twice.
type Record struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	Status      Status
	CheckIn     *string // "HH:MM", "HH:MM:SS" or an ISO timestamp
	CheckOut    *string
	WorkHours   Numeric // stored fallback when check-in/out cannot be used
	LateMinutes Numeric
	Advance     Numeric
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	EmployeeName *string
}

// InPeriod reports whether the record's date falls in the given month/year.
func (r Record) InPeriod(month, year int) bool {
	return int(r.Date.Month()) == month && r.Date.Year() == year
}

func (r Record) CheckInValue() string {
	if r.CheckIn == nil {
		return ""
	}
	return *r.CheckIn
}

func (r Record) CheckOutValue() string {
	if r.CheckOut == nil {
		return ""
	}
	return *r.CheckOut
}
