package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/payroll"
)

type payrollRepositoryImpl struct {
	store *Store
}

func NewPayrollRepository(store *Store) payroll.PayrollRepository {
	return &payrollRepositoryImpl{store: store}
}

func (r *payrollRepositoryImpl) CreatePayrollRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.payroll {
		if existing.EmployeeID == record.EmployeeID &&
			existing.PeriodMonth == record.PeriodMonth &&
			existing.PeriodYear == record.PeriodYear {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Status == "" {
		record.Status = payroll.PayrollStatusDraft
	}
	now := r.store.now()
	record.CreatedAt = now
	record.UpdatedAt = now
	r.store.payroll[record.ID] = record

	return r.withEmployee(record), nil
}

func (r *payrollRepositoryImpl) GetPayrollRecordByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	record, ok := r.store.payroll[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return r.withEmployee(record), nil
}

func (r *payrollRepositoryImpl) GetPayrollRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.PayrollRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, record := range r.store.payroll {
		if record.EmployeeID == employeeID && record.PeriodMonth == month && record.PeriodYear == year {
			return r.withEmployee(record), nil
		}
	}
	return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
}

func (r *payrollRepositoryImpl) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []payroll.PayrollRecord
	for _, record := range r.store.payroll {
		if filter.PeriodMonth != nil && record.PeriodMonth != *filter.PeriodMonth {
			continue
		}
		if filter.PeriodYear != nil && record.PeriodYear != *filter.PeriodYear {
			continue
		}
		if filter.Status != nil && string(record.Status) != *filter.Status {
			continue
		}
		if filter.EmployeeID != nil && record.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, r.withEmployee(record))
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.PeriodYear != b.PeriodYear {
			return a.PeriodYear > b.PeriodYear
		}
		if a.PeriodMonth != b.PeriodMonth {
			return a.PeriodMonth > b.PeriodMonth
		}
		if name(a.EmployeeName) != name(b.EmployeeName) {
			return name(a.EmployeeName) < name(b.EmployeeName)
		}
		return a.ID < b.ID
	})

	total := int64(len(out))
	return paginate(out, filter.Page, filter.Limit), total, nil
}

func (r *payrollRepositoryImpl) FinalizePayrollRecords(ctx context.Context, ids []string, paidBy string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// Check all first so a bad id leaves nothing half-finalized
	for _, id := range ids {
		record, ok := r.store.payroll[id]
		if !ok {
			return payroll.ErrPayrollRecordNotFound
		}
		if record.Status == payroll.PayrollStatusPaid {
			return payroll.ErrPayrollRecordAlreadyPaid
		}
	}

	now := r.store.now()
	for _, id := range ids {
		record := r.store.payroll[id]
		record.Status = payroll.PayrollStatusPaid
		record.PaidAt = &now
		if paidBy != "" {
			by := paidBy
			record.PaidBy = &by
		}
		record.UpdatedAt = now
		r.store.payroll[id] = record
	}

	return nil
}

func (r *payrollRepositoryImpl) DeletePayrollRecord(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	record, ok := r.store.payroll[id]
	if !ok {
		return payroll.ErrPayrollRecordNotFound
	}
	if record.Status == payroll.PayrollStatusPaid {
		return payroll.ErrCannotDeletePaidRecord
	}
	delete(r.store.payroll, id)
	return nil
}

// withEmployee must be called with the store lock held.
func (r *payrollRepositoryImpl) withEmployee(record payroll.PayrollRecord) payroll.PayrollRecord {
	if e, ok := r.store.employees[record.EmployeeID]; ok {
		n, p := e.Name, e.Position
		record.EmployeeName = &n
		record.Position = &p
	}
	return record
}

func name(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
