package attendance

import (
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CreateAttendanceRequest struct {
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"`
	Status      string  `json:"status"`
	CheckIn     *string `json:"check_in,omitempty"`
	CheckOut    *string `json:"check_out,omitempty"`
	WorkHours   Numeric `json:"work_hours"`
	LateMinutes Numeric `json:"late_minutes"`
	Advance     Numeric `json:"advance"`
	Notes       *string `json:"notes,omitempty"`
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}

	if NormalizeStatus(r.Status) == StatusUnknown {
		errs.Add("status", "status must be one of present, absent, late, leave")
	}

	validateNumerics(&errs, &r.WorkHours, &r.LateMinutes, &r.Advance)

	return errs.Err()
}

type UpdateAttendanceRequest struct {
	ID          string   `json:"-"`
	Status      *string  `json:"status,omitempty"`
	CheckIn     *string  `json:"check_in,omitempty"`
	CheckOut    *string  `json:"check_out,omitempty"`
	WorkHours   *Numeric `json:"work_hours,omitempty"`
	LateMinutes *Numeric `json:"late_minutes,omitempty"`
	Advance     *Numeric `json:"advance,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil && NormalizeStatus(*r.Status) == StatusUnknown {
		errs.Add("status", "status must be one of present, absent, late, leave")
	}

	validateNumerics(&errs, r.WorkHours, r.LateMinutes, r.Advance)

	return errs.Err()
}

// validateNumerics range-checks the stored numeric fields. Nil fields are
// left alone; unparseable values read as "no value" and pass.
func validateNumerics(errs *validator.ValidationErrors, workHours, lateMinutes, advance *Numeric) {
	if workHours != nil {
		if f, ok := workHours.Float(); ok && (f < 0 || f > 24) {
			errs.Add("work_hours", "work_hours must be between 0 and 24")
		}
	}
	if lateMinutes != nil {
		if f, ok := lateMinutes.Float(); ok && f < 0 {
			errs.Add("late_minutes", "late_minutes must be non-negative")
		}
	}
	if advance != nil {
		if f, ok := advance.Float(); ok && f < 0 {
			errs.Add("advance", "advance must be non-negative")
		}
	}
}

type AttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	Month      *int    `json:"month,omitempty"`
	Year       *int    `json:"year,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

type AttendanceResponse struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"employee_id"`
	EmployeeName *string  `json:"employee_name,omitempty"`
	Date         string   `json:"date"`
	Status       string   `json:"status"`
	StatusLabel  string   `json:"status_label"`
	CheckIn      *string  `json:"check_in,omitempty"`
	CheckOut     *string  `json:"check_out,omitempty"`
	WorkHours    *float64 `json:"work_hours"`
	DisplayHours string   `json:"display_hours"`
	LateMinutes  int      `json:"late_minutes"`
	Advance      Numeric  `json:"advance"`
	Notes        *string  `json:"notes,omitempty"`
}

type ListAttendanceResponse struct {
	Data       []AttendanceResponse `json:"data"`
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
}

// ClockInRequest records the caller's own arrival. EmployeeID comes from the
// token, not the body.
type ClockInRequest struct {
	EmployeeID string  `json:"-"`
	Notes      *string `json:"notes,omitempty"`
}

type ClockOutRequest struct {
	EmployeeID string  `json:"-"`
	Advance    Numeric `json:"advance"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if f, ok := r.Advance.Float(); ok && f < 0 {
		errs.Add("advance", "advance must be non-negative")
	}

	return errs.Err()
}
