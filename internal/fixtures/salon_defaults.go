package fixtures

import (
	"fmt"
	"time"

	"github.com/lumiere-salon/salon-backend-go/internal/domain/attendance"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/employee"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/sale"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func strPtr(s string) *string { return &s }

func money(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func moneyPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// ==========================================
// DEFAULT ACCOUNTS
// ==========================================

// DefaultUser is a login seeded in demo mode. Password is set by the caller.
type DefaultUser struct {
	Email      string
	Name       string
	Role       user.Role
	EmployeeID *string
}

func GetDefaultUsers() []DefaultUser {
	return []DefaultUser{
		{Email: "owner@lumiere.salon", Name: "صاحبة الصالون", Role: user.RoleOwner},
		{Email: "manager@lumiere.salon", Name: "مديرة الصالون", Role: user.RoleManager},
		{Email: "cashier@lumiere.salon", Name: "الكاشير", Role: user.RoleCashier},
		{Email: "hiba@lumiere.salon", Name: "هبة", Role: user.RoleSpecialist, EmployeeID: strPtr("emp-hiba")},
	}
}

// ==========================================
// DEFAULT STAFF
// ==========================================

// GetDefaultEmployees returns one employee per salary type plus a receptionist.
func GetDefaultEmployees() []employee.Employee {
	return []employee.Employee{
		{
			ID:                   "emp-hiba",
			Name:                 "هبة",
			Position:             "مصففة شعر",
			SalaryType:           employee.SalaryTypeDaily,
			BaseSalary:           money(3000),
			WorkDays:             30,
			ShiftHours:           8,
			ShiftStart:           strPtr("09:00"),
			Commission:           money(10),
			LatePenaltyPerMinute: money(2),
			AbsencePenaltyPerDay: money(50),
			IsActive:             true,
		},
		{
			ID:                   "emp-mona",
			Name:                 "منى",
			Position:             "خبيرة تجميل",
			SalaryType:           employee.SalaryTypeFixed,
			BaseSalary:           money(5000),
			WorkDays:             26,
			ShiftHours:           9,
			ShiftStart:           strPtr("10:00"),
			Commission:           money(15),
			LatePenaltyPerMinute: money(1),
			AbsencePenaltyPerDay: money(150),
			CustomDeductions:     money(200),
			Allowances:           money(300),
			IsActive:             true,
		},
		{
			ID:                   "emp-reem",
			Name:                 "ريم",
			Position:             "أخصائية أظافر",
			SalaryType:           employee.SalaryTypeHourly,
			HourlyRate:           money(40),
			ShiftHours:           6,
			ShiftStart:           strPtr("12:00"),
			Commission:           money(5),
			LatePenaltyPerMinute: money(1),
			IsActive:             true,
		},
		{
			ID:                   "emp-sara",
			Name:                 "سارة",
			Position:             "استقبال",
			SalaryType:           employee.SalaryTypeFixed,
			BaseSalary:           money(3500),
			WorkDays:             26,
			ShiftHours:           8,
			LatePenaltyPerMinute: money(1),
			AbsencePenaltyPerDay: money(100),
			Bonus:                money(250),
			IsActive:             true,
		},
	}
}

// ==========================================
// DEMO ACTIVITY
// ==========================================

// GetDemoAttendance builds attendance for the days of month/year up to and
// including lastDay. Every seventh day is a day off; the pattern of late and
// absent days is fixed so demo payslips are stable.
func GetDemoAttendance(employees []employee.Employee, month, year, lastDay int) []attendance.Record {
	var records []attendance.Record
	for i, emp := range employees {
		start := "09:00"
		if emp.ShiftStart != nil {
			start = *emp.ShiftStart
		}
		for d := 1; d <= lastDay; d++ {
			if d%7 == 0 {
				continue
			}
			date := time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC)
			r := attendance.Record{
				ID:         fmt.Sprintf("att-%s-%04d%02d%02d", emp.ID, year, month, d),
				EmployeeID: emp.ID,
				Date:       date,
				Status:     attendance.StatusPresent,
			}

			switch {
			case (d+i)%11 == 0:
				r.Status = attendance.StatusAbsent
			case (d+i)%13 == 0:
				r.Status = attendance.StatusLeave
			case (d+i)%5 == 0:
				r.Status = attendance.StatusLate
				r.CheckIn = strPtr(shiftClock(start, 25))
				r.CheckOut = strPtr(shiftClock(start, int(emp.ShiftHours*60)))
			default:
				r.CheckIn = strPtr(start)
				r.CheckOut = strPtr(shiftClock(start, int(emp.ShiftHours*60)+(d%3)*30))
			}
			if d == 15 && emp.SalaryType != employee.SalaryTypeHourly {
				r.Advance = attendance.NumericFromInt(200)
			}
			records = append(records, r)
		}
	}
	return records
}

// GetDemoSales returns a few sales per specialist. Half of them carry only
// the specialist's name, as older POS clients did.
func GetDemoSales(employees []employee.Employee, month, year, lastDay int) []sale.Sale {
	var sales []sale.Sale
	n := 0
	for _, emp := range employees {
		if !emp.Commission.IsPositive() {
			continue
		}
		for d := 2; d <= lastDay; d += 3 {
			n++
			s := sale.Sale{
				ID:         fmt.Sprintf("sale-%04d%02d-%03d", year, month, n),
				Specialist: emp.Name,
				Date:       time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC),
				InvoiceNo:  strPtr(fmt.Sprintf("INV-%04d%02d-%03d", year, month, n)),
			}
			if n%2 == 0 {
				s.SpecialistID = strPtr(emp.ID)
				s.Amount = moneyPtr(int64(150 + (d%4)*50))
			} else {
				s.Total = moneyPtr(int64(300 + (d%5)*40))
			}
			sales = append(sales, s)
		}
	}
	return sales
}

// shiftClock returns start shifted by minutes as "HH:MM", capped at 23:59.
func shiftClock(start string, minutes int) string {
	t, err := time.Parse("15:04", start)
	if err != nil {
		t = time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC)
	}
	total := t.Hour()*60 + t.Minute() + minutes
	if total > 23*60+59 {
		total = 23*60 + 59
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
