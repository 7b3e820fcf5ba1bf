package payroll

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lumiere-salon/salon-backend-go/internal/domain/attendance"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/employee"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSource(t *testing.T) {
	emp := scenarioEmployee()
	src := NewLocalSource(NewCalculator("09:00"))

	slip, err := src.Payslip(context.Background(), payroll.PayslipInput{
		Employee: emp,
		Period:   march2025,
		Records:  scenarioRecords(emp.ID),
		Sales:    scenarioSales(emp.Name),
	})

	require.NoError(t, err)
	assertMoney(t, "2330", slip.NetSalary, "net")
	assert.Equal(t, payroll.SourceLocal, slip.Source)
}

func TestFallbackSource_UsesPrimaryWhenHealthy(t *testing.T) {
	primary := payroll.PayslipSourceFunc(func(ctx context.Context, in payroll.PayslipInput) (payroll.Payslip, error) {
		return payroll.Payslip{EmployeeID: in.Employee.ID, NetSalary: dec("999"), Source: payroll.SourceRemote}, nil
	})
	src := NewFallbackSource(primary, NewLocalSource(NewCalculator("09:00")), time.Second)

	slip, err := src.Payslip(context.Background(), payroll.PayslipInput{Employee: scenarioEmployee(), Period: march2025})

	require.NoError(t, err)
	assert.Equal(t, payroll.SourceRemote, slip.Source)
	assertMoney(t, "999", slip.NetSalary, "net")
}

func TestFallbackSource_FallsBackOnError(t *testing.T) {
	primary := payroll.PayslipSourceFunc(func(ctx context.Context, in payroll.PayslipInput) (payroll.Payslip, error) {
		return payroll.Payslip{}, payroll.ErrRemoteUnavailable
	})
	emp := scenarioEmployee()
	src := NewFallbackSource(primary, NewLocalSource(NewCalculator("09:00")), time.Second)

	slip, err := src.Payslip(context.Background(), payroll.PayslipInput{
		Employee: emp,
		Period:   march2025,
		Records:  scenarioRecords(emp.ID),
		Sales:    scenarioSales(emp.Name),
	})

	require.NoError(t, err)
	assert.Equal(t, payroll.SourceLocal, slip.Source)
	assertMoney(t, "2330", slip.NetSalary, "net")
}

func TestFallbackSource_FallsBackOnTimeout(t *testing.T) {
	primary := payroll.PayslipSourceFunc(func(ctx context.Context, in payroll.PayslipInput) (payroll.Payslip, error) {
		<-ctx.Done()
		return payroll.Payslip{}, ctx.Err()
	})
	src := NewFallbackSource(primary, NewLocalSource(NewCalculator("09:00")), 20*time.Millisecond)

	slip, err := src.Payslip(context.Background(), payroll.PayslipInput{Employee: scenarioEmployee(), Period: march2025})

	require.NoError(t, err)
	assert.Equal(t, payroll.SourceLocal, slip.Source)
}

func TestFallbackSource_NilPrimary(t *testing.T) {
	src := NewFallbackSource(nil, NewLocalSource(NewCalculator("09:00")), time.Second)

	slip, err := src.Payslip(context.Background(), payroll.PayslipInput{Employee: scenarioEmployee(), Period: march2025})

	require.NoError(t, err)
	assert.Equal(t, payroll.SourceLocal, slip.Source)
}

func TestBatchPayslips_PartialFailureDoesNotAbort(t *testing.T) {
	employees := []employee.Employee{
		{ID: "a", SalaryType: employee.SalaryTypeFixed, BaseSalary: dec("1000")},
		{ID: "b", SalaryType: employee.SalaryTypeFixed, BaseSalary: dec("2000")},
		{ID: "c", SalaryType: employee.SalaryTypeFixed, BaseSalary: dec("3000")},
	}
	local := NewLocalSource(NewCalculator("09:00"))
	boom := errors.New("boom")
	var calls atomic.Int32
	src := payroll.PayslipSourceFunc(func(ctx context.Context, in payroll.PayslipInput) (payroll.Payslip, error) {
		calls.Add(1)
		if in.Employee.ID == "b" {
			return payroll.Payslip{}, boom
		}
		return local.Payslip(ctx, in)
	})

	results := BatchPayslips(context.Background(), src, employees, march2025, nil, nil, 2)

	require.Len(t, results, 3)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, "a", results[0].Employee.ID)
	assert.NoError(t, results[0].Err)
	assertMoney(t, "1000", results[0].Payslip.NetSalary, "a net")
	assert.ErrorIs(t, results[1].Err, boom)
	assert.NoError(t, results[2].Err)
	assertMoney(t, "3000", results[2].Payslip.NetSalary, "c net")
}

func TestBatchPayslips_GroupsRecordsPerEmployee(t *testing.T) {
	employees := []employee.Employee{
		{ID: "a", SalaryType: employee.SalaryTypeFixed},
		{ID: "b", SalaryType: employee.SalaryTypeFixed},
	}
	records := []attendance.Record{
		record("a", 1, attendance.StatusAbsent),
		record("b", 1, attendance.StatusPresent),
		record("b", 2, attendance.StatusPresent),
	}

	results := BatchPayslips(context.Background(), NewLocalSource(NewCalculator("09:00")), employees, march2025, records, nil, 0)

	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].Payslip.AbsentDays)
	assert.Equal(t, 0, results[0].Payslip.PresentDays)
	assert.Equal(t, 2, results[1].Payslip.PresentDays)
}
