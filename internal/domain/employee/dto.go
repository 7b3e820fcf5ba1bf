package employee

import (
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Name                 string          `json:"name"`
	Position             string          `json:"position"`
	Phone                *string         `json:"phone,omitempty"`
	SalaryType           string          `json:"salary_type"`
	BaseSalary           decimal.Decimal `json:"base_salary"`
	WorkDays             int             `json:"work_days"`
	ShiftHours           float64         `json:"shift_hours"`
	ShiftStart           *string         `json:"shift_start,omitempty"`
	HourlyRate           decimal.Decimal `json:"hourly_rate"`
	Commission           decimal.Decimal `json:"commission"`
	LatePenaltyPerMinute decimal.Decimal `json:"late_penalty_per_minute"`
	AbsencePenaltyPerDay decimal.Decimal `json:"absence_penalty_per_day"`
	CustomDeductions     decimal.Decimal `json:"custom_deductions"`
	Allowances           decimal.Decimal `json:"allowances"`
	Bonus                decimal.Decimal `json:"bonus"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "is required")
	}
	if ParseSalaryType(r.SalaryType) == SalaryTypeDaily && r.WorkDays <= 0 {
		errs.Add("work_days", "must be greater than 0 for daily salary")
	}
	if r.WorkDays < 0 {
		errs.Add("work_days", "must be non-negative")
	}
	if r.ShiftHours < 0 || r.ShiftHours > 24 {
		errs.Add("shift_hours", "must be between 0 and 24")
	}
	if r.ShiftStart != nil && !validator.IsValidClock(*r.ShiftStart) {
		errs.Add("shift_start", "must be in HH:MM format")
	}
	if r.Commission.IsNegative() || r.Commission.GreaterThan(decimal.NewFromInt(100)) {
		errs.Add("commission", "must be between 0 and 100")
	}
	validateAmounts(&errs, map[string]*decimal.Decimal{
		"base_salary":             &r.BaseSalary,
		"hourly_rate":             &r.HourlyRate,
		"late_penalty_per_minute": &r.LatePenaltyPerMinute,
		"absence_penalty_per_day": &r.AbsencePenaltyPerDay,
		"custom_deductions":       &r.CustomDeductions,
		"allowances":              &r.Allowances,
		"bonus":                   &r.Bonus,
	})

	return errs.Err()
}

// validateAmounts rejects negative money fields. Nil entries are unset.
func validateAmounts(errs *validator.ValidationErrors, amounts map[string]*decimal.Decimal) {
	for field, v := range amounts {
		if v != nil && v.IsNegative() {
			errs.Add(field, "must be non-negative")
		}
	}
}

type UpdateEmployeeRequest struct {
	ID                   string           `json:"-"`
	Name                 *string          `json:"name,omitempty"`
	Position             *string          `json:"position,omitempty"`
	Phone                *string          `json:"phone,omitempty"`
	SalaryType           *string          `json:"salary_type,omitempty"`
	BaseSalary           *decimal.Decimal `json:"base_salary,omitempty"`
	WorkDays             *int             `json:"work_days,omitempty"`
	ShiftHours           *float64         `json:"shift_hours,omitempty"`
	ShiftStart           *string          `json:"shift_start,omitempty"`
	HourlyRate           *decimal.Decimal `json:"hourly_rate,omitempty"`
	Commission           *decimal.Decimal `json:"commission,omitempty"`
	LatePenaltyPerMinute *decimal.Decimal `json:"late_penalty_per_minute,omitempty"`
	AbsencePenaltyPerDay *decimal.Decimal `json:"absence_penalty_per_day,omitempty"`
	CustomDeductions     *decimal.Decimal `json:"custom_deductions,omitempty"`
	Allowances           *decimal.Decimal `json:"allowances,omitempty"`
	Bonus                *decimal.Decimal `json:"bonus,omitempty"`
	IsActive             *bool            `json:"is_active,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "cannot be empty")
	}
	if r.WorkDays != nil && *r.WorkDays < 0 {
		errs.Add("work_days", "must be non-negative")
	}
	if r.ShiftHours != nil && (*r.ShiftHours < 0 || *r.ShiftHours > 24) {
		errs.Add("shift_hours", "must be between 0 and 24")
	}
	if r.ShiftStart != nil && !validator.IsValidClock(*r.ShiftStart) {
		errs.Add("shift_start", "must be in HH:MM format")
	}
	if r.Commission != nil && (r.Commission.IsNegative() || r.Commission.GreaterThan(decimal.NewFromInt(100))) {
		errs.Add("commission", "must be between 0 and 100")
	}
	validateAmounts(&errs, map[string]*decimal.Decimal{
		"base_salary":             r.BaseSalary,
		"hourly_rate":             r.HourlyRate,
		"late_penalty_per_minute": r.LatePenaltyPerMinute,
		"absence_penalty_per_day": r.AbsencePenaltyPerDay,
		"custom_deductions":       r.CustomDeductions,
		"allowances":              r.Allowances,
		"bonus":                   r.Bonus,
	})

	return errs.Err()
}

// Apply copies the set fields of the request onto e.
func (r UpdateEmployeeRequest) Apply(e *Employee) {
	if r.Name != nil {
		e.Name = *r.Name
	}
	if r.Position != nil {
		e.Position = *r.Position
	}
	if r.Phone != nil {
		e.Phone = r.Phone
	}
	if r.SalaryType != nil {
		e.SalaryType = ParseSalaryType(*r.SalaryType)
	}
	if r.BaseSalary != nil {
		e.BaseSalary = *r.BaseSalary
	}
	if r.WorkDays != nil {
		e.WorkDays = *r.WorkDays
	}
	if r.ShiftHours != nil {
		e.ShiftHours = *r.ShiftHours
	}
	if r.ShiftStart != nil {
		e.ShiftStart = r.ShiftStart
	}
	if r.HourlyRate != nil {
		e.HourlyRate = *r.HourlyRate
	}
	if r.Commission != nil {
		e.Commission = *r.Commission
	}
	if r.LatePenaltyPerMinute != nil {
		e.LatePenaltyPerMinute = *r.LatePenaltyPerMinute
	}
	if r.AbsencePenaltyPerDay != nil {
		e.AbsencePenaltyPerDay = *r.AbsencePenaltyPerDay
	}
	if r.CustomDeductions != nil {
		e.CustomDeductions = *r.CustomDeductions
	}
	if r.Allowances != nil {
		e.Allowances = *r.Allowances
	}
	if r.Bonus != nil {
		e.Bonus = *r.Bonus
	}
	if r.IsActive != nil {
		e.IsActive = *r.IsActive
	}
}

type EmployeeFilter struct {
	Search     *string `json:"search,omitempty"`
	SalaryType *string `json:"salary_type,omitempty"`
	ActiveOnly bool    `json:"active_only"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

type EmployeeResponse struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Position             string          `json:"position"`
	Phone                *string         `json:"phone,omitempty"`
	SalaryType           string          `json:"salary_type"`
	SalaryTypeLabel      string          `json:"salary_type_label"`
	BaseSalary           decimal.Decimal `json:"base_salary"`
	WorkDays             int             `json:"work_days"`
	ShiftHours           float64         `json:"shift_hours"`
	ShiftStart           *string         `json:"shift_start,omitempty"`
	HourlyRate           decimal.Decimal `json:"hourly_rate"`
	Commission           decimal.Decimal `json:"commission"`
	LatePenaltyPerMinute decimal.Decimal `json:"late_penalty_per_minute"`
	AbsencePenaltyPerDay decimal.Decimal `json:"absence_penalty_per_day"`
	CustomDeductions     decimal.Decimal `json:"custom_deductions"`
	Allowances           decimal.Decimal `json:"allowances"`
	Bonus                decimal.Decimal `json:"bonus"`
	IsActive             bool            `json:"is_active"`
}

type ListEmployeeResponse struct {
	Data       []EmployeeResponse `json:"data"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                   e.ID,
		Name:                 e.Name,
		Position:             e.Position,
		Phone:                e.Phone,
		SalaryType:           string(e.SalaryType),
		SalaryTypeLabel:      e.SalaryType.Label(),
		BaseSalary:           e.BaseSalary,
		WorkDays:             e.WorkDays,
		ShiftHours:           e.ShiftHours,
		ShiftStart:           e.ShiftStart,
		HourlyRate:           e.HourlyRate,
		Commission:           e.Commission,
		LatePenaltyPerMinute: e.LatePenaltyPerMinute,
		AbsencePenaltyPerDay: e.AbsencePenaltyPerDay,
		CustomDeductions:     e.CustomDeductions,
		Allowances:           e.Allowances,
		Bonus:                e.Bonus,
		IsActive:             e.IsActive,
	}
}
