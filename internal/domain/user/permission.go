package user

type Permission string

const (
	// Staff
	PermissionEmployeeView   Permission = "employee.view"
	PermissionEmployeeManage Permission = "employee.manage"

	// Attendance
	PermissionAttendanceView   Permission = "attendance.view"
	PermissionAttendanceManage Permission = "attendance.manage"

	// Payroll
	PermissionPayrollView   Permission = "payroll.view"
	PermissionPayrollManage Permission = "payroll.manage"

	// Sales / POS
	PermissionSalesView   Permission = "sales.view"
	PermissionSalesManage Permission = "sales.manage"

	// Reports
	PermissionReportsExport Permission = "reports.export"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		// Owner has all permissions
		PermissionEmployeeView,
		PermissionEmployeeManage,
		PermissionAttendanceView,
		PermissionAttendanceManage,
		PermissionPayrollView,
		PermissionPayrollManage,
		PermissionSalesView,
		PermissionSalesManage,
		PermissionReportsExport,
	},
	RoleManager: {
		PermissionEmployeeView,
		PermissionEmployeeManage,
		PermissionAttendanceView,
		PermissionAttendanceManage,
		PermissionPayrollView,
		PermissionSalesView,
		PermissionSalesManage,
		PermissionReportsExport,
	},
	RoleCashier: {
		PermissionEmployeeView,
		PermissionAttendanceView,
		PermissionSalesView,
		PermissionSalesManage,
	},
	RoleSpecialist: {
		PermissionAttendanceView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}

// Page is a dashboard section.
type Page string

const (
	PageDashboard    Page = "dashboard"
	PagePOS          Page = "pos"
	PageInvoices     Page = "invoices"
	PageAppointments Page = "appointments"
	PageInventory    Page = "inventory"
	PageAttendance   Page = "attendance"
	PagePayroll      Page = "payroll"
	PageCustomers    Page = "customers"
	PageSuppliers    Page = "suppliers"
	PageSettings     Page = "settings"
)

// AllPages in sidebar order.
var AllPages = []Page{
	PageDashboard,
	PagePOS,
	PageInvoices,
	PageAppointments,
	PageInventory,
	PageAttendance,
	PagePayroll,
	PageCustomers,
	PageSuppliers,
	PageSettings,
}

var rolePages = map[Role][]Page{
	RoleOwner: AllPages,
	RoleManager: {
		PageDashboard,
		PagePOS,
		PageInvoices,
		PageAppointments,
		PageInventory,
		PageAttendance,
		PagePayroll,
		PageCustomers,
		PageSuppliers,
	},
	RoleCashier: {
		PageDashboard,
		PagePOS,
		PageInvoices,
		PageAppointments,
		PageCustomers,
	},
	RoleSpecialist: {
		PageDashboard,
		PageAppointments,
		PageAttendance,
	},
}

// VisiblePages returns the pages role may open, in sidebar order.
// Unknown roles see nothing.
func VisiblePages(role Role) []Page {
	pages := rolePages[role]
	out := make([]Page, len(pages))
	copy(out, pages)
	return out
}

// CanView reports whether role may open page.
func CanView(role Role, page Page) bool {
	for _, p := range rolePages[role] {
		if p == page {
			return true
		}
	}
	return false
}
