package user

import "time"

type Role string

const (
	RoleOwner      Role = "owner"      // Salon owner - full access
	RoleManager    Role = "manager"    // Runs the floor, manages staff and payroll
	RoleCashier    Role = "cashier"    // POS and invoices
	RoleSpecialist Role = "specialist" // Stylist / beautician
)

// ParseRole returns the role named by s and whether it is known.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleOwner, RoleManager, RoleCashier, RoleSpecialist:
		return r, true
	default:
		return "", false
	}
}

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash *string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Set when the account belongs to a staff member on payroll
	EmployeeID *string
}

// IsOwner checks if user is the salon owner
func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}

// IsManager checks if user is manager or owner
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleOwner
}
