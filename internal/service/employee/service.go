package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lumiere-salon/salon-backend-go/internal/domain/employee"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/payroll"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	payrollRepo  payroll.PayrollRepository
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	payrollRepo payroll.PayrollRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		payrollRepo:  payrollRepo,
	}
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	newEmployee := employee.Employee{
		Name:                 strings.TrimSpace(req.Name),
		Position:             strings.TrimSpace(req.Position),
		Phone:                req.Phone,
		SalaryType:           employee.ParseSalaryType(req.SalaryType),
		BaseSalary:           req.BaseSalary,
		WorkDays:             req.WorkDays,
		ShiftHours:           req.ShiftHours,
		ShiftStart:           req.ShiftStart,
		HourlyRate:           req.HourlyRate,
		Commission:           req.Commission,
		LatePenaltyPerMinute: req.LatePenaltyPerMinute,
		AbsencePenaltyPerDay: req.AbsencePenaltyPerDay,
		CustomDeductions:     req.CustomDeductions,
		Allowances:           req.Allowances,
		Bonus:                req.Bonus,
		IsActive:             true,
	}

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNameExists) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("employee created", "employee_id", created.ID, "salary_type", created.SalaryType)
	return employee.ToResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	// Daily salary needs a working-day count to divide by
	merged := existing
	req.Apply(&merged)
	if merged.SalaryType == employee.SalaryTypeDaily && merged.WorkDays <= 0 {
		return employee.EmployeeResponse{}, employee.ErrInvalidSalaryType
	}

	if err := s.employeeRepo.Update(ctx, req.ID, req); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) || errors.Is(err, employee.ErrEmployeeNameExists) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get updated employee: %w", err)
	}

	return employee.ToResponse(emp), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return err
	}

	draft := string(payroll.PayrollStatusDraft)
	_, drafts, err := s.payrollRepo.ListPayrollRecords(ctx, payroll.PayrollFilter{EmployeeID: &id, Status: &draft, Page: 1, Limit: 1})
	if err != nil {
		return fmt.Errorf("failed to check payroll records: %w", err)
	}
	if drafts > 0 {
		return employee.ErrEmployeeHasPayroll
	}

	// Soft delete
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.ToResponse(emp))
	}

	return employee.ListEmployeeResponse{
		Data:       responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}
