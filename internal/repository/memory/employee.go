package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/employee"
)

type employeeRepositoryImpl struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepositoryImpl{store: store}
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.employees[id]
	if !ok || e.DeletedAt != nil {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.nameTaken(newEmployee.Name, "") {
		return employee.Employee{}, employee.ErrEmployeeNameExists
	}

	if newEmployee.ID == "" {
		newEmployee.ID = uuid.NewString()
	}
	now := r.store.now()
	newEmployee.CreatedAt = now
	newEmployee.UpdatedAt = now
	r.store.employees[newEmployee.ID] = newEmployee

	return newEmployee, nil
}

func (r *employeeRepositoryImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	e, ok := r.store.employees[id]
	if !ok || e.DeletedAt != nil {
		return employee.ErrEmployeeNotFound
	}
	if req.Name != nil && r.nameTaken(*req.Name, id) {
		return employee.ErrEmployeeNameExists
	}

	req.Apply(&e)
	e.UpdatedAt = r.store.now()
	r.store.employees[id] = e

	return nil
}

func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	e, ok := r.store.employees[id]
	if !ok || e.DeletedAt != nil {
		return employee.ErrEmployeeNotFound
	}
	now := r.store.now()
	e.DeletedAt = &now
	e.IsActive = false
	r.store.employees[id] = e

	return nil
}

func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []employee.Employee
	for _, e := range r.store.employees {
		if e.DeletedAt != nil {
			continue
		}
		if filter.ActiveOnly && !e.IsActive {
			continue
		}
		if filter.SalaryType != nil && e.SalaryType != employee.ParseSalaryType(*filter.SalaryType) {
			continue
		}
		if filter.Search != nil && *filter.Search != "" {
			q := strings.ToLower(*filter.Search)
			if !strings.Contains(strings.ToLower(e.Name), q) && !strings.Contains(strings.ToLower(e.Position), q) {
				continue
			}
		}
		out = append(out, e)
	}
	sortEmployees(out)

	total := int64(len(out))
	return paginate(out, filter.Page, filter.Limit), total, nil
}

func (r *employeeRepositoryImpl) GetActive(ctx context.Context) ([]employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []employee.Employee
	for _, e := range r.store.employees {
		if e.DeletedAt == nil && e.IsActive {
			out = append(out, e)
		}
	}
	sortEmployees(out)
	return out, nil
}

// nameTaken must be called with the store lock held.
func (r *employeeRepositoryImpl) nameTaken(name, exceptID string) bool {
	name = strings.TrimSpace(name)
	for id, e := range r.store.employees {
		if id != exceptID && e.DeletedAt == nil && strings.EqualFold(strings.TrimSpace(e.Name), name) {
			return true
		}
	}
	return false
}

func sortEmployees(list []employee.Employee) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
}
