package payroll

import "context"

// PayslipSource produces a payslip for one employee and period. The local
// calculator and the remote payroll API both implement it.
type PayslipSource interface {
	Payslip(ctx context.Context, in PayslipInput) (Payslip, error)
}

// PayslipSourceFunc adapts a function to PayslipSource.
type PayslipSourceFunc func(ctx context.Context, in PayslipInput) (Payslip, error)

func (f PayslipSourceFunc) Payslip(ctx context.Context, in PayslipInput) (Payslip, error) {
	return f(ctx, in)
}
