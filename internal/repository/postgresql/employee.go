package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/employee"
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/database"
)

const employeeColumns = `
	id, name, position, phone, salary_type, base_salary, work_days, shift_hours, shift_start,
	hourly_rate, commission, late_penalty_per_minute, absence_penalty_per_day,
	custom_deductions, allowances, bonus, is_active, created_at, updated_at, deleted_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	var salaryType string
	err := row.Scan(
		&e.ID, &e.Name, &e.Position, &e.Phone, &salaryType, &e.BaseSalary, &e.WorkDays, &e.ShiftHours, &e.ShiftStart,
		&e.HourlyRate, &e.Commission, &e.LatePenaltyPerMinute, &e.AbsencePenaltyPerDay,
		&e.CustomDeductions, &e.Allowances, &e.Bonus, &e.IsActive, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	)
	e.SalaryType = employee.ParseSalaryType(salaryType)
	return e, err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND deleted_at IS NULL`

	found, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return found, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	if newEmployee.ID == "" {
		newEmployee.ID = uuid.NewString()
	}

	query := `
		INSERT INTO employees (
			id, name, position, phone, salary_type, base_salary, work_days, shift_hours, shift_start,
			hourly_rate, commission, late_penalty_per_minute, absence_penalty_per_day,
			custom_deductions, allowances, bonus, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.ID, newEmployee.Name, newEmployee.Position, newEmployee.Phone, string(newEmployee.SalaryType),
		newEmployee.BaseSalary, newEmployee.WorkDays, newEmployee.ShiftHours, newEmployee.ShiftStart,
		newEmployee.HourlyRate, newEmployee.Commission, newEmployee.LatePenaltyPerMinute, newEmployee.AbsencePenaltyPerDay,
		newEmployee.CustomDeductions, newEmployee.Allowances, newEmployee.Bonus, newEmployee.IsActive,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmployeeNameExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.Phone != nil {
		if *req.Phone == "" {
			updates["phone"] = nil
		} else {
			updates["phone"] = *req.Phone
		}
	}
	if req.SalaryType != nil {
		updates["salary_type"] = string(employee.ParseSalaryType(*req.SalaryType))
	}
	if req.BaseSalary != nil {
		updates["base_salary"] = *req.BaseSalary
	}
	if req.WorkDays != nil {
		updates["work_days"] = *req.WorkDays
	}
	if req.ShiftHours != nil {
		updates["shift_hours"] = *req.ShiftHours
	}
	if req.ShiftStart != nil {
		if *req.ShiftStart == "" {
			updates["shift_start"] = nil
		} else {
			updates["shift_start"] = *req.ShiftStart
		}
	}
	if req.HourlyRate != nil {
		updates["hourly_rate"] = *req.HourlyRate
	}
	if req.Commission != nil {
		updates["commission"] = *req.Commission
	}
	if req.LatePenaltyPerMinute != nil {
		updates["late_penalty_per_minute"] = *req.LatePenaltyPerMinute
	}
	if req.AbsencePenaltyPerDay != nil {
		updates["absence_penalty_per_day"] = *req.AbsencePenaltyPerDay
	}
	if req.CustomDeductions != nil {
		updates["custom_deductions"] = *req.CustomDeductions
	}
	if req.Allowances != nil {
		updates["allowances"] = *req.Allowances
	}
	if req.Bonus != nil {
		updates["bonus"] = *req.Bonus
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		_, err := r.GetByID(ctx, id)
		return err
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}
	args = append(args, id)

	sql := fmt.Sprintf("UPDATE employees SET %s WHERE id = $%d AND deleted_at IS NULL", strings.Join(setClauses, ", "), i)

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.ErrEmployeeNameExists
		}
		return fmt.Errorf("failed to update employee with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Delete soft-deletes the employee so past payroll keeps its join.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE employees SET deleted_at = NOW(), is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"deleted_at IS NULL"}
	args := []interface{}{}
	argIdx := 1

	if filter.ActiveOnly {
		whereClauses = append(whereClauses, "is_active = TRUE")
	}
	if filter.SalaryType != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("salary_type = $%d", argIdx))
		args = append(args, string(employee.ParseSalaryType(*filter.SalaryType)))
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(name ILIKE $%d OR position ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	where := "WHERE " + strings.Join(whereClauses, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM employees "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := "SELECT " + employeeColumns + " FROM employees " + where + " ORDER BY name, id"
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, filter.Limit, (page-1)*filter.Limit)
	}

	employees, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// GetActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetActive(ctx context.Context) ([]employee.Employee, error) {
	return r.query(ctx, "SELECT "+employeeColumns+" FROM employees WHERE deleted_at IS NULL AND is_active = TRUE ORDER BY name, id")
}

func (r *employeeRepositoryImpl) query(ctx context.Context, query string, args ...interface{}) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
