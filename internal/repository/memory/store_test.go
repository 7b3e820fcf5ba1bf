package memory

import (
	"context"
	"testing"
	"time"

	"github.com/lumiere-salon/salon-backend-go/internal/domain/attendance"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/employee"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/payroll"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var seedTime = time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC)

func seededStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	s.SetClock(func() time.Time { return seedTime })
	require.NoError(t, s.Seed("password123", seedTime))
	return s
}

func TestSeed(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	owner, err := NewUserRepository(s).GetByEmail(ctx, "OWNER@lumiere.salon")
	require.NoError(t, err)
	assert.Equal(t, user.RoleOwner, owner.Role)
	require.NotNil(t, owner.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*owner.PasswordHash), []byte("password123")))

	active, err := NewEmployeeRepository(s).GetActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 4)

	records, err := NewAttendanceRepository(s).ListByPeriod(ctx, 3, 2025, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, records)
	for _, r := range records {
		assert.LessOrEqual(t, r.Date.Day(), 20)
		assert.NotEqual(t, 0, r.Date.Day()%7)
	}

	sales, err := NewSaleRepository(s).ListByPeriod(ctx, 3, 2025)
	require.NoError(t, err)
	assert.NotEmpty(t, sales)
}

func TestEmployeeRepository(t *testing.T) {
	s := NewStore()
	repo := NewEmployeeRepository(s)
	ctx := context.Background()

	created, err := repo.Create(ctx, employee.Employee{Name: "لمى", SalaryType: employee.SalaryTypeFixed, IsActive: true})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = repo.Create(ctx, employee.Employee{Name: " لمى "})
	assert.ErrorIs(t, err, employee.ErrEmployeeNameExists)

	newName := "لمى أحمد"
	require.NoError(t, repo.Update(ctx, created.ID, employee.UpdateEmployeeRequest{Name: &newName}))
	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, newName, got.Name)

	search := "أحمد"
	list, total, err := repo.List(ctx, employee.EmployeeFilter{Search: &search})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), employee.ErrEmployeeNotFound)
}

func TestAttendanceRepository(t *testing.T) {
	s := seededStore(t)
	repo := NewAttendanceRepository(s)
	ctx := context.Background()

	_, err := repo.Create(ctx, attendance.Record{EmployeeID: "nobody", Date: seedTime})
	assert.ErrorIs(t, err, attendance.ErrEmployeeNotFound)

	checkIn := "09:00"
	open, err := repo.Create(ctx, attendance.Record{
		EmployeeID: "emp-hiba",
		Date:       time.Date(2025, time.March, 21, 0, 0, 0, 0, time.UTC),
		Status:     attendance.StatusPresent,
		CheckIn:    &checkIn,
	})
	require.NoError(t, err)
	require.NotNil(t, open.EmployeeName)
	assert.Equal(t, "هبة", *open.EmployeeName)

	openRecords, err := repo.ListOpenOn(ctx, time.Date(2025, time.March, 21, 18, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, openRecords, 1)
	assert.Equal(t, open.ID, openRecords[0].ID)

	month, year, empID := 3, 2025, "emp-hiba"
	page, total, err := repo.List(ctx, attendance.AttendanceFilter{EmployeeID: &empID, Month: &month, Year: &year, Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, page, 5)
	assert.Greater(t, total, int64(5))
	assert.Equal(t, open.ID, page[0].ID, "newest first")

	require.NoError(t, repo.Delete(ctx, open.ID))
	_, err = repo.GetByID(ctx, open.ID)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestPayrollRepository(t *testing.T) {
	s := seededStore(t)
	repo := NewPayrollRepository(s)
	ctx := context.Background()

	rec, err := repo.CreatePayrollRecord(ctx, payroll.PayrollRecord{
		EmployeeID:  "emp-mona",
		PeriodMonth: 3,
		PeriodYear:  2025,
		Payslip:     payroll.Payslip{NetSalary: decimal.NewFromInt(4800)},
	})
	require.NoError(t, err)
	assert.Equal(t, payroll.PayrollStatusDraft, rec.Status)
	require.NotNil(t, rec.EmployeeName)

	_, err = repo.CreatePayrollRecord(ctx, payroll.PayrollRecord{EmployeeID: "emp-mona", PeriodMonth: 3, PeriodYear: 2025})
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyExists)

	assert.ErrorIs(t, repo.FinalizePayrollRecords(ctx, []string{rec.ID, "missing"}, "user-1"), payroll.ErrPayrollRecordNotFound)
	got, err := repo.GetPayrollRecordByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.PayrollStatusDraft, got.Status)

	require.NoError(t, repo.FinalizePayrollRecords(ctx, []string{rec.ID}, "user-1"))
	got, err = repo.GetPayrollRecordByEmployeePeriod(ctx, "emp-mona", 3, 2025)
	require.NoError(t, err)
	assert.Equal(t, payroll.PayrollStatusPaid, got.Status)
	require.NotNil(t, got.PaidBy)
	assert.Equal(t, "user-1", *got.PaidBy)

	assert.ErrorIs(t, repo.DeletePayrollRecord(ctx, rec.ID), payroll.ErrCannotDeletePaidRecord)

	status := "paid"
	list, total, err := repo.ListPayrollRecords(ctx, payroll.PayrollFilter{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}
