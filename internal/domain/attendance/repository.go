package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	Update(ctx context.Context, record Record) error
	Delete(ctx context.Context, id string) error

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Record, int64, error)

	// ListByPeriod returns every record dated in month/year, optionally for
	// a subset of employees. Used by payroll.
	ListByPeriod(ctx context.Context, month, year int, employeeIDs []string) ([]Record, error)

	// ListOpenOn returns records dated on day that have a check-in but no check-out.
	ListOpenOn(ctx context.Context, day time.Time) ([]Record, error)
}
