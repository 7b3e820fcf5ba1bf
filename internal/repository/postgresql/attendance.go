package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/attendance"
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/database"
)

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.status, a.check_in, a.check_out,
	a.work_hours, a.late_minutes, a.advance, a.notes, a.created_at, a.updated_at,
	e.name`

const attendanceFrom = `
	FROM attendance a
	LEFT JOIN employees e ON a.employee_id = e.id`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	var status string
	var workHours, lateMinutes, advance *string
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &status, &rec.CheckIn, &rec.CheckOut,
		&workHours, &lateMinutes, &advance, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName,
	)
	rec.Status = attendance.Status(status)
	rec.WorkHours = numeric(workHours)
	rec.LateMinutes = numeric(lateMinutes)
	rec.Advance = numeric(advance)
	return rec, err
}

func numeric(s *string) attendance.Numeric {
	if s == nil {
		return ""
	}
	return attendance.Numeric(*s)
}

func nullableNumeric(n attendance.Numeric) *string {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return nil
	}
	return &s
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1)`, record.EmployeeID).Scan(&exists); err != nil {
		return attendance.Record{}, fmt.Errorf("failed to check employee: %w", err)
	}
	if !exists {
		return attendance.Record{}, attendance.ErrEmployeeNotFound
	}

	query := `
		INSERT INTO attendance (
			id, employee_id, date, status, check_in, check_out, work_hours, late_minutes, advance, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := q.Exec(ctx, query,
		record.ID, record.EmployeeID, record.Date, string(record.Status), record.CheckIn, record.CheckOut,
		nullableNumeric(record.WorkHours), nullableNumeric(record.LateMinutes), nullableNumeric(record.Advance), record.Notes,
	)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return a.GetByID(ctx, record.ID)
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + attendanceFrom + ` WHERE a.id = $1`

	rec, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return rec, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance
		SET employee_id = $1, date = $2, status = $3, check_in = $4, check_out = $5,
			work_hours = $6, late_minutes = $7, advance = $8, notes = $9, updated_at = NOW()
		WHERE id = $10
	`
	tag, err := q.Exec(ctx, query,
		record.EmployeeID, record.Date, string(record.Status), record.CheckIn, record.CheckOut,
		nullableNumeric(record.WorkHours), nullableNumeric(record.LateMinutes), nullableNumeric(record.Advance), record.Notes,
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	whereClauses := []string{"1 = 1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, string(attendance.NormalizeStatus(*filter.Status)))
		argIdx++
	}
	if filter.Month != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("EXTRACT(MONTH FROM a.date) = $%d", argIdx))
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Year != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("EXTRACT(YEAR FROM a.date) = $%d", argIdx))
		args = append(args, *filter.Year)
		argIdx++
	}
	where := " WHERE " + strings.Join(whereClauses, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+attendanceFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	// Newest first
	query := "SELECT " + attendanceColumns + attendanceFrom + where + " ORDER BY a.date DESC, a.id"
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, filter.Limit, (page-1)*filter.Limit)
	}

	records, err := a.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListByPeriod implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByPeriod(ctx context.Context, month, year int, employeeIDs []string) ([]attendance.Record, error) {
	query := "SELECT " + attendanceColumns + attendanceFrom + `
		WHERE EXTRACT(MONTH FROM a.date) = $1 AND EXTRACT(YEAR FROM a.date) = $2`
	args := []interface{}{month, year}
	if len(employeeIDs) > 0 {
		query += " AND a.employee_id = ANY($3)"
		args = append(args, employeeIDs)
	}
	query += " ORDER BY a.date, a.id"

	return a.query(ctx, query, args...)
}

// ListOpenOn implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenOn(ctx context.Context, day time.Time) ([]attendance.Record, error) {
	query := "SELECT " + attendanceColumns + attendanceFrom + `
		WHERE a.date = $1
		  AND COALESCE(a.check_in, '') <> ''
		  AND COALESCE(a.check_out, '') = ''
		ORDER BY a.date, a.id`

	y, m, d := day.Date()
	return a.query(ctx, query, time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func (a *attendanceRepository) query(ctx context.Context, query string, args ...interface{}) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
