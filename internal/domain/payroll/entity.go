package payroll

import (
	"time"

	"github.com/lumiere-salon/salon-backend-go/internal/domain/attendance"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/employee"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/sale"
	"github.com/shopspring/decimal"
)

// Period is a calendar pay month.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (p Period) Contains(t time.Time) bool {
	return int(t.Month()) == p.Month && t.Year() == p.Year
}

// PayslipSourceKind tells which source produced a payslip.
type PayslipSourceKind string

const (
	SourceLocal  PayslipSourceKind = "local"
	SourceRemote PayslipSourceKind = "remote"
)

// Payslip is the derived salary statement of one employee for one month.
// Field names follow the remote payroll API so both sources are interchangeable.
type Payslip struct {
	EmployeeID string `json:"employeeId"`
	Period     Period `json:"period"`

	PresentDays int `json:"presentDays"`
	LateDays    int `json:"lateDays"`
	AbsentDays  int `json:"absentDays"`
	LeaveDays   int `json:"leaveDays"`

	TotalWorkHours   float64 `json:"totalWorkHours"`
	OvertimeHours    float64 `json:"overtimeHours"`
	TotalLateMinutes int     `json:"totalLateMinutes"`

	BaseSalary  decimal.Decimal `json:"baseSalary"`
	Commission  decimal.Decimal `json:"commission"`
	OvertimePay decimal.Decimal `json:"overtimePay"`

	LateDeduction    decimal.Decimal `json:"lateDeduction"`
	AbsentDeduction  decimal.Decimal `json:"absentDeduction"`
	CustomDeductions decimal.Decimal `json:"customDeductions"`
	Advances         decimal.Decimal `json:"advances"`
	TotalDeductions  decimal.Decimal `json:"totalDeductions"`

	TotalEarnings decimal.Decimal `json:"totalEarnings"`
	NetSalary     decimal.Decimal `json:"netSalary"`

	// Reporting only, not part of NetSalary.
	Allowances  decimal.Decimal `json:"allowances"`
	Bonus       decimal.Decimal `json:"bonus"`
	GrossSalary decimal.Decimal `json:"grossSalary"`

	Source PayslipSourceKind `json:"source"`
}

// PayslipInput carries everything a source may need. Records and Sales may
// span several employees and months; sources filter them.
type PayslipInput struct {
	Employee employee.Employee
	Period   Period
	Records  []attendance.Record
	Sales    []sale.Sale
}

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusDraft PayrollStatus = "draft"
	PayrollStatusPaid  PayrollStatus = "paid"
)

// PayrollRecord is a payslip snapshot saved for a period.
type PayrollRecord struct {
	ID          string
	EmployeeID  string
	PeriodMonth int
	PeriodYear  int
	Payslip     Payslip
	Status      PayrollStatus
	PaidAt      *time.Time
	PaidBy      *string
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeName *string
	Position     *string
}
