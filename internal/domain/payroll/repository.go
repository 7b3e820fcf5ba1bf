package payroll

import "context"

// PayrollRepository stores generated payroll records.
type PayrollRepository interface {
	CreatePayrollRecord(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetPayrollRecordByID(ctx context.Context, id string) (PayrollRecord, error)
	GetPayrollRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (PayrollRecord, error)
	ListPayrollRecords(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, int64, error)
	FinalizePayrollRecords(ctx context.Context, ids []string, paidBy string) error
	DeletePayrollRecord(ctx context.Context, id string) error
}
