// Package memory keeps every repository in process memory. It backs the
// demo mode of the API and the service tests.
package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/lumiere-salon/salon-backend-go/internal/domain/attendance"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/employee"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/notification"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/payroll"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/sale"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/user"
	"github.com/lumiere-salon/salon-backend-go/internal/fixtures"
	"golang.org/x/crypto/bcrypt"
)

// Store holds the data shared by the memory repositories.
type Store struct {
	mu         sync.RWMutex
	users      map[string]user.User
	employees  map[string]employee.Employee
	attendance map[string]attendance.Record
	sales      map[string]sale.Sale
	payroll    map[string]payroll.PayrollRecord

	notifications map[string]notification.Notification

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:      make(map[string]user.User),
		employees:  make(map[string]employee.Employee),
		attendance: make(map[string]attendance.Record),
		sales:      make(map[string]sale.Sale),
		payroll:    make(map[string]payroll.PayrollRecord),

		notifications: make(map[string]notification.Notification),

		now: time.Now,
	}
}

// SetClock replaces the time source used for timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Seed loads the demo salon: default accounts sharing password, the default
// staff, and attendance and sales for the month of now up to today.
func (s *Store) Seed(password string, now time.Time) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}
	hashed := string(hash)

	employees := fixtures.GetDefaultEmployees()
	month, year, day := int(now.Month()), now.Year(), now.Day()
	records := fixtures.GetDemoAttendance(employees, month, year, day)
	sales := fixtures.GetDemoSales(employees, month, year, day)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range fixtures.GetDefaultUsers() {
		id := fmt.Sprintf("user-%d", i+1)
		s.users[id] = user.User{
			ID:           id,
			Email:        u.Email,
			Name:         u.Name,
			PasswordHash: &hashed,
			Role:         u.Role,
			IsActive:     true,
			EmployeeID:   u.EmployeeID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}
	for _, e := range employees {
		e.CreatedAt, e.UpdatedAt = now, now
		s.employees[e.ID] = e
	}
	for _, r := range records {
		r.CreatedAt, r.UpdatedAt = now, now
		s.attendance[r.ID] = r
	}
	for _, sl := range sales {
		sl.CreatedAt = now
		s.sales[sl.ID] = sl
	}

	return nil
}

func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
