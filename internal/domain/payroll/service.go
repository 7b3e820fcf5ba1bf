package payroll

import "context"

type PayrollService interface {
	// Payslips, computed on demand
	GetPayslip(ctx context.Context, employeeID string, period Period) (Payslip, error)
	ListPayslips(ctx context.Context, period Period) ([]PayslipEntry, error)

	// Payroll records
	GeneratePayroll(ctx context.Context, req GeneratePayrollRequest) ([]PayrollRecordResponse, error)
	GetPayrollRecord(ctx context.Context, id string) (PayrollRecordResponse, error)
	ListPayrollRecords(ctx context.Context, filter PayrollFilter) (ListPayrollRecordResponse, error)
	FinalizePayroll(ctx context.Context, req FinalizePayrollRequest) error
	DeletePayrollRecord(ctx context.Context, id string) error

	// Summary & export
	GetPayrollSummary(ctx context.Context, period Period) (PayrollSummaryResponse, error)
	ExportReport(ctx context.Context, period Period, format string) (ReportFile, error)
}
