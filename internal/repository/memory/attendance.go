package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/attendance"
)

type attendanceRepositoryImpl struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{store: store}
}

func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.employees[record.EmployeeID]; !ok {
		return attendance.Record{}, attendance.ErrEmployeeNotFound
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := r.store.now()
	record.CreatedAt = now
	record.UpdatedAt = now
	r.store.attendance[record.ID] = record

	return r.withEmployeeName(record), nil
}

func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.attendance[id]
	if !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return r.withEmployeeName(rec), nil
}

func (r *attendanceRepositoryImpl) Update(ctx context.Context, record attendance.Record) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.attendance[record.ID]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = r.store.now()
	record.EmployeeName = nil
	r.store.attendance[record.ID] = record

	return nil
}

func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.attendance[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(r.store.attendance, id)
	return nil
}

func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []attendance.Record
	for _, rec := range r.store.attendance {
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && rec.Status != attendance.NormalizeStatus(*filter.Status) {
			continue
		}
		if filter.Month != nil && int(rec.Date.Month()) != *filter.Month {
			continue
		}
		if filter.Year != nil && rec.Date.Year() != *filter.Year {
			continue
		}
		out = append(out, r.withEmployeeName(rec))
	}
	// Newest first
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})

	total := int64(len(out))
	return paginate(out, filter.Page, filter.Limit), total, nil
}

func (r *attendanceRepositoryImpl) ListByPeriod(ctx context.Context, month, year int, employeeIDs []string) ([]attendance.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var wanted map[string]bool
	if len(employeeIDs) > 0 {
		wanted = make(map[string]bool, len(employeeIDs))
		for _, id := range employeeIDs {
			wanted[id] = true
		}
	}

	var out []attendance.Record
	for _, rec := range r.store.attendance {
		if !rec.InPeriod(month, year) {
			continue
		}
		if wanted != nil && !wanted[rec.EmployeeID] {
			continue
		}
		out = append(out, r.withEmployeeName(rec))
	}
	sortChronological(out)
	return out, nil
}

func (r *attendanceRepositoryImpl) ListOpenOn(ctx context.Context, day time.Time) ([]attendance.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	y, m, d := day.Date()
	var out []attendance.Record
	for _, rec := range r.store.attendance {
		ry, rm, rd := rec.Date.Date()
		if ry != y || rm != m || rd != d {
			continue
		}
		if rec.CheckInValue() == "" || rec.CheckOutValue() != "" {
			continue
		}
		out = append(out, r.withEmployeeName(rec))
	}
	sortChronological(out)
	return out, nil
}

// withEmployeeName must be called with the store lock held.
func (r *attendanceRepositoryImpl) withEmployeeName(rec attendance.Record) attendance.Record {
	if e, ok := r.store.employees[rec.EmployeeID]; ok {
		name := e.Name
		rec.EmployeeName = &name
	}
	return rec
}

func sortChronological(list []attendance.Record) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.Before(list[j].Date)
		}
		return list[i].ID < list[j].ID
	})
}
