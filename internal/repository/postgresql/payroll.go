package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/payroll"
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/database"
)

const payrollColumns = `
	pr.id, pr.employee_id, pr.period_month, pr.period_year, pr.payslip,
	pr.status, pr.paid_at, pr.paid_by, pr.notes, pr.created_at, pr.updated_at,
	e.name, e.position`

const payrollFrom = `
	FROM payroll_records pr
	LEFT JOIN employees e ON pr.employee_id = e.id`

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	var payslipBytes []byte
	var status string
	if err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.PeriodMonth, &rec.PeriodYear, &payslipBytes,
		&status, &rec.PaidAt, &rec.PaidBy, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName, &rec.Position,
	); err != nil {
		return payroll.PayrollRecord{}, err
	}
	rec.Status = payroll.PayrollStatus(status)
	if err := json.Unmarshal(payslipBytes, &rec.Payslip); err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to decode payslip of record %s: %w", rec.ID, err)
	}
	return rec, nil
}

// ========== PAYROLL RECORDS ==========

func (r *payrollRepository) CreatePayrollRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Status == "" {
		record.Status = payroll.PayrollStatusDraft
	}
	payslipJSON, err := json.Marshal(record.Payslip)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to encode payslip: %w", err)
	}

	query := `
		INSERT INTO payroll_records (id, employee_id, period_month, period_year, payslip, net_salary, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = q.Exec(ctx, query,
		record.ID, record.EmployeeID, record.PeriodMonth, record.PeriodYear,
		payslipJSON, record.Payslip.NetSalary, string(record.Status), record.Notes,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_employee_period") {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return r.GetPayrollRecordByID(ctx, record.ID)
}

func (r *payrollRepository) GetPayrollRecordByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanPayrollRecord(q.QueryRow(ctx, "SELECT "+payrollColumns+payrollFrom+" WHERE pr.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return rec, nil
}

func (r *payrollRepository) GetPayrollRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + payrollColumns + payrollFrom + `
		WHERE pr.employee_id = $1 AND pr.period_month = $2 AND pr.period_year = $3`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return rec, nil
}

func (r *payrollRepository) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := payrollFrom + " WHERE 1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.PeriodMonth != nil {
		baseQuery += fmt.Sprintf(" AND pr.period_month = $%d", argIdx)
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		baseQuery += fmt.Sprintf(" AND pr.period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND pr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND pr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	// Count query
	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	selectQuery := "SELECT " + payrollColumns + baseQuery +
		" ORDER BY pr.period_year DESC, pr.period_month DESC, e.name, pr.id"
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		selectQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, filter.Limit, (page-1)*filter.Limit)
	}

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, totalCount, nil
}

// FinalizePayrollRecords marks every record paid, or none of them.
func (r *payrollRepository) FinalizePayrollRecords(ctx context.Context, ids []string, paidBy string) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		rows, err := q.Query(ctx, `SELECT id, status FROM payroll_records WHERE id = ANY($1) FOR UPDATE`, ids)
		if err != nil {
			return fmt.Errorf("failed to lock payroll records: %w", err)
		}
		statuses := make(map[string]string, len(ids))
		for rows.Next() {
			var id, status string
			if err := rows.Scan(&id, &status); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan payroll record status: %w", err)
			}
			statuses[id] = status
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for _, id := range ids {
			status, ok := statuses[id]
			if !ok {
				return payroll.ErrPayrollRecordNotFound
			}
			if status == string(payroll.PayrollStatusPaid) {
				return payroll.ErrPayrollRecordAlreadyPaid
			}
		}

		var by *string
		if paidBy != "" {
			by = &paidBy
		}
		_, err = q.Exec(ctx, `
			UPDATE payroll_records
			SET status = $1, paid_at = NOW(), paid_by = $2, updated_at = NOW()
			WHERE id = ANY($3)
		`, string(payroll.PayrollStatusPaid), by, ids)
		if err != nil {
			return fmt.Errorf("failed to finalize payroll records: %w", err)
		}
		return nil
	})
}

func (r *payrollRepository) DeletePayrollRecord(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var status string
	err := q.QueryRow(ctx, `SELECT status FROM payroll_records WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.ErrPayrollRecordNotFound
		}
		return fmt.Errorf("failed to check payroll record status: %w", err)
	}
	if status == string(payroll.PayrollStatusPaid) {
		return payroll.ErrCannotDeletePaidRecord
	}

	_, err = q.Exec(ctx, `DELETE FROM payroll_records WHERE id = $1 AND status <> $2`, id, string(payroll.PayrollStatusPaid))
	if err != nil {
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}
	return nil
}
