package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/lumiere-salon/salon-backend-go/internal/domain/attendance"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/employee"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/notification"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/payroll"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/sale"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/user"
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/database"
	"github.com/lumiere-salon/salon-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to TEST_DATABASE_URL, applies the schema and empties
// every table. Tests are skipped when the variable is not set.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolConfig{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, postgresql.Migrate(ctx, db))
	_, err = db.Exec(ctx, "TRUNCATE TABLE notifications, payroll_records, sales, attendance, users, employees CASCADE")
	require.NoError(t, err)

	return db
}

func strPtr(s string) *string { return &s }

func createEmployee(t *testing.T, repo employee.EmployeeRepository, name string) employee.Employee {
	t.Helper()
	e, err := repo.Create(context.Background(), employee.Employee{
		Name:       name,
		Position:   "مصففة شعر",
		SalaryType: employee.SalaryTypeDaily,
		BaseSalary: decimal.NewFromInt(3000),
		WorkDays:   30,
		ShiftHours: 8,
		ShiftStart: strPtr("09:00"),
		Commission: decimal.NewFromInt(10),
		IsActive:   true,
	})
	require.NoError(t, err)
	return e
}

func TestEmployeeRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)

	hiba := createEmployee(t, repo, "هبة")
	assert.NotEmpty(t, hiba.ID)
	assert.True(t, decimal.NewFromInt(3000).Equal(hiba.BaseSalary))
	assert.Equal(t, employee.SalaryTypeDaily, hiba.SalaryType)

	_, err := repo.Create(ctx, employee.Employee{Name: " هبة "})
	assert.ErrorIs(t, err, employee.ErrEmployeeNameExists)

	salary := decimal.NewFromInt(3600)
	inactive := false
	require.NoError(t, repo.Update(ctx, hiba.ID, employee.UpdateEmployeeRequest{BaseSalary: &salary, IsActive: &inactive}))

	got, err := repo.GetByID(ctx, hiba.ID)
	require.NoError(t, err)
	assert.True(t, salary.Equal(got.BaseSalary))
	assert.False(t, got.IsActive)

	createEmployee(t, repo, "منى")
	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "منى", active[0].Name)

	list, total, err := repo.List(ctx, employee.EmployeeFilter{Search: strPtr("مصففة"), Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, hiba.ID))
	_, err = repo.GetByID(ctx, hiba.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, hiba.ID), employee.ErrEmployeeNotFound)
}

func TestAttendanceRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	emp := createEmployee(t, postgresql.NewEmployeeRepository(db), "هبة")
	repo := postgresql.NewAttendanceRepository(db)

	day := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
	open, err := repo.Create(ctx, attendance.Record{
		EmployeeID: emp.ID,
		Date:       day,
		Status:     attendance.StatusLate,
		CheckIn:    strPtr("09:20"),
		Advance:    attendance.Numeric("150"),
	})
	require.NoError(t, err)
	require.NotNil(t, open.EmployeeName)
	assert.Equal(t, "هبة", *open.EmployeeName)
	assert.Equal(t, attendance.Numeric("150"), open.Advance)

	_, err = repo.Create(ctx, attendance.Record{
		EmployeeID: emp.ID,
		Date:       day.AddDate(0, 0, 1),
		Status:     attendance.StatusPresent,
		CheckIn:    strPtr("09:00"),
		CheckOut:   strPtr("17:00"),
		WorkHours:  attendance.Numeric("abc"),
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendance.Record{EmployeeID: "ghost", Date: day, Status: attendance.StatusAbsent})
	assert.ErrorIs(t, err, attendance.ErrEmployeeNotFound)

	openOn, err := repo.ListOpenOn(ctx, day)
	require.NoError(t, err)
	require.Len(t, openOn, 1)
	assert.Equal(t, open.ID, openOn[0].ID)

	period, err := repo.ListByPeriod(ctx, 3, 2025, []string{emp.ID})
	require.NoError(t, err)
	require.Len(t, period, 2)
	assert.Equal(t, attendance.Numeric("abc"), period[1].WorkHours)

	open.CheckOut = strPtr("18:00")
	require.NoError(t, repo.Update(ctx, open))
	openOn, err = repo.ListOpenOn(ctx, day)
	require.NoError(t, err)
	assert.Empty(t, openOn)

	month, year := 3, 2025
	list, total, err := repo.List(ctx, attendance.AttendanceFilter{Month: &month, Year: &year, Status: strPtr("متأخر")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, open.ID))
	assert.ErrorIs(t, repo.Delete(ctx, open.ID), attendance.ErrAttendanceNotFound)
}

func TestSaleRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewSaleRepository(db)

	amount := decimal.NewFromInt(1000)
	total := decimal.NewFromInt(1200)
	for _, s := range []sale.Sale{
		{Specialist: "هبة", Date: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), Amount: &amount},
		{Specialist: "هبة", Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Total: &total},
		{Specialist: "هبة", Date: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), Amount: &amount},
	} {
		_, err := repo.Create(ctx, s)
		require.NoError(t, err)
	}

	sales, err := repo.ListByPeriod(ctx, 3, 2025)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.True(t, total.Equal(sales[0].Value()))
	assert.True(t, amount.Equal(sales[1].Value()))
}

func TestPayrollRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	emp := createEmployee(t, postgresql.NewEmployeeRepository(db), "هبة")
	repo := postgresql.NewPayrollRepository(db)

	rec, err := repo.CreatePayrollRecord(ctx, payroll.PayrollRecord{
		EmployeeID:  emp.ID,
		PeriodMonth: 3,
		PeriodYear:  2025,
		Payslip: payroll.Payslip{
			EmployeeID: emp.ID,
			Period:     payroll.Period{Month: 3, Year: 2025},
			NetSalary:  decimal.NewFromInt(2330),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, payroll.PayrollStatusDraft, rec.Status)
	assert.True(t, decimal.NewFromInt(2330).Equal(rec.Payslip.NetSalary))
	require.NotNil(t, rec.EmployeeName)

	_, err = repo.CreatePayrollRecord(ctx, payroll.PayrollRecord{EmployeeID: emp.ID, PeriodMonth: 3, PeriodYear: 2025})
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyExists)

	assert.ErrorIs(t, repo.FinalizePayrollRecords(ctx, []string{rec.ID, "missing"}, "user-1"), payroll.ErrPayrollRecordNotFound)
	require.NoError(t, repo.FinalizePayrollRecords(ctx, []string{rec.ID}, "user-1"))
	assert.ErrorIs(t, repo.FinalizePayrollRecords(ctx, []string{rec.ID}, "user-1"), payroll.ErrPayrollRecordAlreadyPaid)

	paid, err := repo.GetPayrollRecordByEmployeePeriod(ctx, emp.ID, 3, 2025)
	require.NoError(t, err)
	assert.Equal(t, payroll.PayrollStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidBy)
	assert.Equal(t, "user-1", *paid.PaidBy)

	assert.ErrorIs(t, repo.DeletePayrollRecord(ctx, rec.ID), payroll.ErrCannotDeletePaidRecord)

	status := "paid"
	list, total, err := repo.ListPayrollRecords(ctx, payroll.PayrollFilter{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}

func TestUserAndNotificationRepositories(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	users := postgresql.NewUserRepository(db)
	notifications := postgresql.NewNotificationRepository(db)

	owner, err := users.Create(ctx, user.User{Email: "owner@salon.test", Role: user.RoleOwner, IsActive: true})
	require.NoError(t, err)
	_, err = users.Create(ctx, user.User{Email: "cashier@salon.test", Role: user.RoleCashier, IsActive: true})
	require.NoError(t, err)
	_, err = users.Create(ctx, user.User{Email: "OWNER@salon.test", Role: user.RoleOwner})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	found, err := users.GetByEmail(ctx, " Owner@Salon.test ")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, found.ID)

	managers, err := users.ListByRoles(ctx, user.RoleOwner, user.RoleManager)
	require.NoError(t, err)
	require.Len(t, managers, 1)
	assert.Equal(t, owner.ID, managers[0].ID)

	require.NoError(t, notifications.CreateBatch(ctx, []notification.Notification{
		{RecipientID: owner.ID, Type: notification.TypeLongOpenShift, Title: "a", Message: "a", Data: map[string]interface{}{"attendance_id": "att-1"}},
		{RecipientID: owner.ID, Type: notification.TypePayrollGenerated, Title: "b", Message: "b"},
	}))

	count, err := notifications.GetUnreadCount(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	list, total, err := notifications.GetByUserID(ctx, owner.ID, 1, 10, false)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 2)

	require.NoError(t, notifications.MarkAsRead(ctx, []string{list[0].ID}, owner.ID))
	unread, _, err := notifications.GetByUserID(ctx, owner.ID, 1, 10, true)
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	require.NoError(t, notifications.MarkAllAsRead(ctx, owner.ID))
	count, err = notifications.GetUnreadCount(ctx, owner.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, notifications.Delete(ctx, list[0].ID, "someone-else"), notification.ErrNotificationNotFound)
	require.NoError(t, notifications.Delete(ctx, list[0].ID, owner.ID))
}
