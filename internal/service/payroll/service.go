package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/attendance"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/employee"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/payroll"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/sale"
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/export"
	"github.com/shopspring/decimal"
)

// Options tune the payroll service.
type Options struct {
	BatchConcurrency int
	Currency         string

	// Called after draft records were created for a period.
	Generated func(ctx context.Context, period payroll.Period, records int)
	// Called after records were marked paid.
	Finalized func(ctx context.Context, recordIDs []string, paidBy string)
}

type PayrollServiceImpl struct {
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	saleRepo       sale.SaleRepository
	source         payroll.PayslipSource
	opts           Options
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	saleRepo sale.SaleRepository,
	source payroll.PayslipSource,
	opts Options,
) payroll.PayrollService {
	if opts.BatchConcurrency <= 0 {
		opts.BatchConcurrency = defaultBatchConcurrency
	}
	if opts.Currency == "" {
		opts.Currency = export.DefaultCurrency
	}
	return &PayrollServiceImpl{
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		saleRepo:       saleRepo,
		source:         source,
		opts:           opts,
	}
}

// Helper to get user_id from JWT context. Empty when the call is not
// authenticated, e.g. from a scheduled job.
func getUserIDFromContext(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil || claims == nil {
		return ""
	}
	userID, _ := claims["user_id"].(string)
	return userID
}

// ========== PAYSLIPS ==========

func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, employeeID string, period payroll.Period) (payroll.Payslip, error) {
	if err := period.Validate(); err != nil {
		return payroll.Payslip{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return payroll.Payslip{}, payroll.ErrEmployeeNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get employee: %w", err)
	}

	records, err := s.attendanceRepo.ListByPeriod(ctx, period.Month, period.Year, []string{emp.ID})
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	sales, err := s.saleRepo.ListByPeriod(ctx, period.Month, period.Year)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to get sales: %w", err)
	}

	return s.source.Payslip(ctx, payroll.PayslipInput{
		Employee: emp,
		Period:   period,
		Records:  records,
		Sales:    sales,
	})
}

func (s *PayrollServiceImpl) ListPayslips(ctx context.Context, period payroll.Period) ([]payroll.PayslipEntry, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}

	results, err := s.computeBatch(ctx, employees, period)
	if err != nil {
		return nil, err
	}

	entries := make([]payroll.PayslipEntry, 0, len(results))
	for _, r := range results {
		entry := payroll.PayslipEntry{
			EmployeeID:   r.Employee.ID,
			EmployeeName: r.Employee.Name,
			Position:     r.Employee.Position,
		}
		if r.Err != nil {
			slog.Warn("payslip computation failed", "employee_id", r.Employee.ID, "error", r.Err)
			entry.Error = r.Err.Error()
		} else {
			slip := r.Payslip
			entry.Payslip = &slip
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (s *PayrollServiceImpl) computeBatch(ctx context.Context, employees []employee.Employee, period payroll.Period) ([]BatchResult, error) {
	ids := make([]string, 0, len(employees))
	for _, emp := range employees {
		ids = append(ids, emp.ID)
	}

	records, err := s.attendanceRepo.ListByPeriod(ctx, period.Month, period.Year, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	sales, err := s.saleRepo.ListByPeriod(ctx, period.Month, period.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales: %w", err)
	}

	return BatchPayslips(ctx, s.source, employees, period, records, sales, s.opts.BatchConcurrency), nil
}

// ========== PAYROLL GENERATION ==========

func (s *PayrollServiceImpl) GeneratePayroll(ctx context.Context, req payroll.GeneratePayrollRequest) ([]payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	period := payroll.Period{Month: req.PeriodMonth, Year: req.PeriodYear}

	allEmployees, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}

	var employees []employee.Employee
	if len(req.EmployeeIDs) > 0 {
		employeeIDSet := make(map[string]bool, len(req.EmployeeIDs))
		for _, id := range req.EmployeeIDs {
			employeeIDSet[id] = true
		}
		for _, emp := range allEmployees {
			if employeeIDSet[emp.ID] {
				employees = append(employees, emp)
			}
		}
	} else {
		employees = allEmployees
	}

	// Skip employees that already have a record for the period
	var pending []employee.Employee
	for _, emp := range employees {
		_, err := s.payrollRepo.GetPayrollRecordByEmployeePeriod(ctx, emp.ID, period.Month, period.Year)
		if err == nil {
			continue
		}
		if !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
			return nil, fmt.Errorf("failed to check existing payroll record: %w", err)
		}
		pending = append(pending, emp)
	}

	results, err := s.computeBatch(ctx, pending, period)
	if err != nil {
		return nil, err
	}

	var records []payroll.PayrollRecord
	for _, r := range results {
		if r.Err != nil {
			slog.Warn("skipping payroll record, payslip failed", "employee_id", r.Employee.ID, "error", r.Err)
			continue
		}

		name := r.Employee.Name
		position := r.Employee.Position
		record := payroll.PayrollRecord{
			EmployeeID:   r.Employee.ID,
			PeriodMonth:  period.Month,
			PeriodYear:   period.Year,
			Payslip:      r.Payslip,
			Status:       payroll.PayrollStatusDraft,
			EmployeeName: &name,
			Position:     &position,
		}

		created, err := s.payrollRepo.CreatePayrollRecord(ctx, record)
		if err != nil {
			if errors.Is(err, payroll.ErrPayrollRecordAlreadyExists) {
				continue
			}
			return nil, fmt.Errorf("failed to create payroll record for employee %s: %w", r.Employee.ID, err)
		}
		records = append(records, created)
	}

	if len(records) > 0 && s.opts.Generated != nil {
		s.opts.Generated(ctx, period, len(records))
	}

	return mapToRecordResponses(records), nil
}

func (s *PayrollServiceImpl) GetPayrollRecord(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return mapToRecordResponse(record), nil
}

func (s *PayrollServiceImpl) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	records, totalCount, err := s.payrollRepo.ListPayrollRecords(ctx, filter)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	return payroll.ListPayrollRecordResponse{
		Data:       mapToRecordResponses(records),
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) FinalizePayroll(ctx context.Context, req payroll.FinalizePayrollRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	paidBy := req.PaidBy
	if paidBy == "" {
		paidBy = getUserIDFromContext(ctx)
	}

	for _, id := range req.RecordIDs {
		record, err := s.payrollRepo.GetPayrollRecordByID(ctx, id)
		if err != nil {
			return err
		}
		if record.Status == payroll.PayrollStatusPaid {
			return payroll.ErrPayrollRecordAlreadyPaid
		}
	}

	if err := s.payrollRepo.FinalizePayrollRecords(ctx, req.RecordIDs, paidBy); err != nil {
		return err
	}
	if s.opts.Finalized != nil {
		s.opts.Finalized(ctx, req.RecordIDs, paidBy)
	}
	return nil
}

func (s *PayrollServiceImpl) DeletePayrollRecord(ctx context.Context, id string) error {
	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, id)
	if err != nil {
		return err
	}
	if record.Status == payroll.PayrollStatusPaid {
		return payroll.ErrCannotDeletePaidRecord
	}

	return s.payrollRepo.DeletePayrollRecord(ctx, id)
}

// ========== SUMMARY ==========

func (s *PayrollServiceImpl) GetPayrollSummary(ctx context.Context, period payroll.Period) (payroll.PayrollSummaryResponse, error) {
	entries, err := s.ListPayslips(ctx, period)
	if err != nil {
		return payroll.PayrollSummaryResponse{}, err
	}

	summary := payroll.PayrollSummaryResponse{
		PeriodMonth:          period.Month,
		PeriodYear:           period.Year,
		TotalBaseSalary:      decimal.Zero,
		TotalCommission:      decimal.Zero,
		TotalOvertime:        decimal.Zero,
		TotalDeductions:      decimal.Zero,
		TotalNetSalary:       decimal.Zero,
		NegativeNetEmployees: []string{},
		FailedEmployees:      []string{},
	}

	for _, e := range entries {
		if e.Payslip == nil {
			summary.FailedEmployees = append(summary.FailedEmployees, e.EmployeeID)
			continue
		}
		p := e.Payslip
		summary.TotalEmployees++
		summary.TotalBaseSalary = summary.TotalBaseSalary.Add(p.BaseSalary)
		summary.TotalCommission = summary.TotalCommission.Add(p.Commission)
		summary.TotalOvertime = summary.TotalOvertime.Add(p.OvertimePay)
		summary.TotalDeductions = summary.TotalDeductions.Add(p.TotalDeductions)
		summary.TotalNetSalary = summary.TotalNetSalary.Add(p.NetSalary)
		if p.NetSalary.IsNegative() {
			summary.NegativeNetEmployees = append(summary.NegativeNetEmployees, e.EmployeeID)
		}
	}

	return summary, nil
}

// ========== REPORT ==========

func (s *PayrollServiceImpl) ExportReport(ctx context.Context, period payroll.Period, format string) (payroll.ReportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = export.FormatCSV
	}
	if format != export.FormatCSV && format != export.FormatXLSX {
		return payroll.ReportFile{}, payroll.ErrUnsupportedReportFormat
	}

	entries, err := s.ListPayslips(ctx, period)
	if err != nil {
		return payroll.ReportFile{}, err
	}

	label := fmt.Sprintf("%04d-%02d", period.Year, period.Month)
	content, contentType, err := export.Render(export.BuildRows(entries, s.opts.Currency), format, label)
	if err != nil {
		return payroll.ReportFile{}, err
	}

	return payroll.ReportFile{
		Filename:    fmt.Sprintf("payroll-%s.%s", label, format),
		ContentType: contentType,
		Content:     content,
	}, nil
}

// ========== HELPERS ==========

func mapToRecordResponse(r payroll.PayrollRecord) payroll.PayrollRecordResponse {
	var paidAtStr *string
	if r.PaidAt != nil {
		str := r.PaidAt.Format(time.RFC3339)
		paidAtStr = &str
	}

	employeeName := ""
	if r.EmployeeName != nil {
		employeeName = *r.EmployeeName
	}

	return payroll.PayrollRecordResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: employeeName,
		Position:     r.Position,
		PeriodMonth:  r.PeriodMonth,
		PeriodYear:   r.PeriodYear,
		Payslip:      r.Payslip,
		Status:       string(r.Status),
		PaidAt:       paidAtStr,
		Notes:        r.Notes,
	}
}

func mapToRecordResponses(records []payroll.PayrollRecord) []payroll.PayrollRecordResponse {
	result := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, mapToRecordResponse(r))
	}
	return result
}
