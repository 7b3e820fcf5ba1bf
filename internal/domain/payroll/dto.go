package payroll

import (
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PAYSLIP DTOs ==========

// PayslipEntry is one row of a batch computation. A failed employee carries
// Error instead of aborting the batch.
type PayslipEntry struct {
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name"`
	Position     string   `json:"position"`
	Payslip      *Payslip `json:"payslip,omitempty"`
	Error        string   `json:"error,omitempty"`
}

func (p Period) Validate() error {
	if !validator.IsValidPeriod(p.Month, p.Year) {
		return validator.ValidationErrors{
			{Field: "period", Message: "month must be 1-12 and year a four digit year"},
		}
	}
	return nil
}

// ========== PAYROLL RECORD DTOs ==========

type GeneratePayrollRequest struct {
	PeriodMonth int      `json:"period_month"`
	PeriodYear  int      `json:"period_year"`
	EmployeeIDs []string `json:"employee_ids,omitempty"` // Empty = all active employees
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs.Add("period_month", "must be between 1 and 12")
	}
	if r.PeriodYear < 2000 {
		errs.Add("period_year", "must be 2000 or later")
	}

	return errs.Err()
}

type FinalizePayrollRequest struct {
	RecordIDs []string `json:"record_ids"`
	PaidBy    string   `json:"-"`
}

func (r *FinalizePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.RecordIDs) == 0 {
		errs.Add("record_ids", "at least one record is required")
	}

	return errs.Err()
}

type PayrollRecordResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Position     *string `json:"position,omitempty"`
	PeriodMonth  int     `json:"period_month"`
	PeriodYear   int     `json:"period_year"`
	Payslip      Payslip `json:"payslip"`
	Status       string  `json:"status"`
	PaidAt       *string `json:"paid_at,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

type PayrollFilter struct {
	PeriodMonth *int    `json:"period_month,omitempty"`
	PeriodYear  *int    `json:"period_year,omitempty"`
	Status      *string `json:"status,omitempty"`
	EmployeeID  *string `json:"employee_id,omitempty"`
	Page        int     `json:"page"`
	Limit       int     `json:"limit"`
}

type ListPayrollRecordResponse struct {
	Data       []PayrollRecordResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}

type PayrollSummaryResponse struct {
	PeriodMonth          int             `json:"period_month"`
	PeriodYear           int             `json:"period_year"`
	TotalEmployees       int             `json:"total_employees"`
	TotalBaseSalary      decimal.Decimal `json:"total_base_salary"`
	TotalCommission      decimal.Decimal `json:"total_commission"`
	TotalOvertime        decimal.Decimal `json:"total_overtime"`
	TotalDeductions      decimal.Decimal `json:"total_deductions"`
	TotalNetSalary       decimal.Decimal `json:"total_net_salary"`
	NegativeNetEmployees []string        `json:"negative_net_employees"`
	FailedEmployees      []string        `json:"failed_employees"`
}

// ReportFile is an exported payroll table.
type ReportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
