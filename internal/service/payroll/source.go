package payroll

import (
	"context"
	"log/slog"
	"time"

	"github.com/lumiere-salon/salon-backend-go/internal/domain/attendance"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/employee"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/payroll"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/sale"
	"golang.org/x/sync/errgroup"
)

const defaultBatchConcurrency = 8

// LocalSource computes payslips in process.
type LocalSource struct {
	calc *Calculator
}

func NewLocalSource(calc *Calculator) *LocalSource {
	return &LocalSource{calc: calc}
}

func (s *LocalSource) Payslip(ctx context.Context, in payroll.PayslipInput) (payroll.Payslip, error) {
	return s.calc.Calculate(in), nil
}

// FallbackSource asks primary first and answers from fallback when primary
// fails or does not answer within timeout.
type FallbackSource struct {
	primary  payroll.PayslipSource
	fallback payroll.PayslipSource
	timeout  time.Duration
}

func NewFallbackSource(primary, fallback payroll.PayslipSource, timeout time.Duration) *FallbackSource {
	return &FallbackSource{
		primary:  primary,
		fallback: fallback,
		timeout:  timeout,
	}
}

func (s *FallbackSource) Payslip(ctx context.Context, in payroll.PayslipInput) (payroll.Payslip, error) {
	if s.primary == nil {
		return s.fallback.Payslip(ctx, in)
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	slip, err := s.primary.Payslip(callCtx, in)
	if err == nil {
		return slip, nil
	}

	slog.Warn("primary payslip source failed, using fallback",
		"employee_id", in.Employee.ID,
		"month", in.Period.Month,
		"year", in.Period.Year,
		"error", err,
	)
	return s.fallback.Payslip(ctx, in)
}

// BatchResult is the outcome for one employee of a batch.
type BatchResult struct {
	Employee employee.Employee
	Payslip  payroll.Payslip
	Err      error
}

// BatchPayslips computes one payslip per employee, at most limit at a time.
// Results keep the order of employees. A failing employee only marks its own
// result; the rest of the batch still completes.
func BatchPayslips(
	ctx context.Context,
	src payroll.PayslipSource,
	employees []employee.Employee,
	period payroll.Period,
	records []attendance.Record,
	sales []sale.Sale,
	limit int,
) []BatchResult {
	if limit <= 0 {
		limit = defaultBatchConcurrency
	}

	byEmployee := make(map[string][]attendance.Record, len(employees))
	for _, r := range records {
		byEmployee[r.EmployeeID] = append(byEmployee[r.EmployeeID], r)
	}

	results := make([]BatchResult, len(employees))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, emp := range employees {
		g.Go(func() error {
			slip, err := src.Payslip(ctx, payroll.PayslipInput{
				Employee: emp,
				Period:   period,
				Records:  byEmployee[emp.ID],
				Sales:    sales,
			})
			results[i] = BatchResult{Employee: emp, Payslip: slip, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
