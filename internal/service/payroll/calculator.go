package payroll

import (
	"strings"

	"github.com/lumiere-salon/salon-backend-go/internal/domain/attendance"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/employee"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/payroll"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/sale"
	attendanceService "github.com/lumiere-salon/salon-backend-go/internal/service/attendance"
	"github.com/shopspring/decimal"
)

var (
	overtimeMultiplier = decimal.NewFromFloat(1.5)
	hundred            = decimal.NewFromInt(100)
)

// Calculator turns an employee's salary configuration, attendance and sales
// into a payslip. It holds no state besides its configuration, so the same
// input always yields the same payslip.
type Calculator struct {
	defaultShiftStart string
}

// NewCalculator creates a calculator. defaultShiftStart ("HH:MM") is used for
// late-minute derivation when the employee has no shift start of its own.
func NewCalculator(defaultShiftStart string) *Calculator {
	return &Calculator{defaultShiftStart: defaultShiftStart}
}

// Calculate computes the payslip of in.Employee for in.Period. Records and
// sales that belong to other employees or other months are ignored.
func (c *Calculator) Calculate(in payroll.PayslipInput) payroll.Payslip {
	emp := in.Employee
	slip := payroll.Payslip{
		EmployeeID: emp.ID,
		Period:     in.Period,
		Source:     payroll.SourceLocal,
	}

	scheduledStart := c.defaultShiftStart
	if emp.ShiftStart != nil && strings.TrimSpace(*emp.ShiftStart) != "" {
		scheduledStart = *emp.ShiftStart
	}

	advances := decimal.Zero
	for _, r := range in.Records {
		if r.EmployeeID != emp.ID || !in.Period.Contains(r.Date) {
			continue
		}

		switch r.Status {
		case attendance.StatusPresent:
			slip.PresentDays++
		case attendance.StatusLate:
			slip.PresentDays++
			slip.LateDays++
			slip.TotalLateMinutes += attendanceService.LateMinutes(r, scheduledStart)
		case attendance.StatusAbsent:
			slip.AbsentDays++
		case attendance.StatusLeave:
			slip.LeaveDays++
		}

		if hours, ok := attendanceService.DisplayWorkHours(r); ok {
			slip.TotalWorkHours += hours
			// No shift length configured means no overtime threshold.
			if emp.ShiftHours > 0 && hours > emp.ShiftHours {
				slip.OvertimeHours += hours - emp.ShiftHours
			}
		}

		advances = advances.Add(r.Advance.Decimal())
	}

	slip.Commission = c.commission(emp, in.Period, in.Sales)
	slip.BaseSalary = c.baseSalary(emp, slip.PresentDays, slip.TotalWorkHours)
	slip.OvertimePay = decimal.NewFromFloat(slip.OvertimeHours).
		Mul(EffectiveHourlyRate(emp)).
		Mul(overtimeMultiplier)

	slip.LateDeduction = decimal.NewFromInt(int64(slip.TotalLateMinutes)).Mul(emp.LatePenaltyPerMinute)
	slip.AbsentDeduction = decimal.NewFromInt(int64(slip.AbsentDays)).Mul(emp.AbsencePenaltyPerDay)
	slip.CustomDeductions = emp.CustomDeductions
	slip.Advances = advances
	slip.TotalDeductions = slip.LateDeduction.
		Add(slip.AbsentDeduction).
		Add(slip.CustomDeductions).
		Add(slip.Advances)

	slip.TotalEarnings = slip.BaseSalary.Add(slip.Commission).Add(slip.OvertimePay)
	// Not clamped: a negative net flags an over-deducted employee.
	slip.NetSalary = slip.TotalEarnings.Sub(slip.TotalDeductions)

	slip.Allowances = emp.Allowances
	slip.Bonus = emp.Bonus
	slip.GrossSalary = slip.TotalEarnings.Add(emp.Allowances).Add(emp.Bonus)

	return slip
}

func (c *Calculator) baseSalary(emp employee.Employee, presentDays int, workHours float64) decimal.Decimal {
	switch emp.SalaryType {
	case employee.SalaryTypeDaily:
		if emp.WorkDays <= 0 {
			return decimal.Zero
		}
		return emp.BaseSalary.
			Mul(decimal.NewFromInt(int64(presentDays))).
			Div(decimal.NewFromInt(int64(emp.WorkDays)))
	case employee.SalaryTypeHourly:
		return emp.HourlyRate.Mul(decimal.NewFromFloat(workHours))
	default:
		return emp.BaseSalary
	}
}

func (c *Calculator) commission(emp employee.Employee, period payroll.Period, sales []sale.Sale) decimal.Decimal {
	if !emp.Commission.IsPositive() {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, s := range sales {
		if !period.Contains(s.Date) || !AttributedTo(s, emp) {
			continue
		}
		total = total.Add(s.Value())
	}
	return total.Mul(emp.Commission).Div(hundred)
}

// EffectiveHourlyRate is the hourly rate overtime is paid at. Hourly staff
// use their rate; everyone else gets BaseSalary / (WorkDays * ShiftHours),
// or zero when that divisor is zero.
func EffectiveHourlyRate(emp employee.Employee) decimal.Decimal {
	if emp.SalaryType == employee.SalaryTypeHourly {
		return emp.HourlyRate
	}
	divisor := decimal.NewFromFloat(float64(emp.WorkDays) * emp.ShiftHours)
	if !divisor.IsPositive() {
		return decimal.Zero
	}
	return emp.BaseSalary.Div(divisor)
}

// AttributedTo reports whether a sale counts toward emp's commission. Sales
// carrying a specialist id are joined by id; older sales only have the
// specialist's display name.
func AttributedTo(s sale.Sale, emp employee.Employee) bool {
	if s.SpecialistID != nil && strings.TrimSpace(*s.SpecialistID) != "" {
		return *s.SpecialistID == emp.ID
	}
	name := strings.TrimSpace(emp.Name)
	return name != "" && strings.TrimSpace(s.Specialist) == name
}
