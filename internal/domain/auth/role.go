package auth

type Role string

const (
	RoleAdmin    Role = "admin"    // HR administrator - full access
	RoleEmployee Role = "employee" // Regular employee
)

type Permission string

const (
	// Attendance
	PermissionAttendanceScan    Permission = "attendance.scan"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceManage  Permission = "attendance.manage"

	// Employees
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"

	// Payroll
	PermissionPayrollGenerate Permission = "payroll.generate"
	PermissionPayrollDisburse Permission = "payroll.disburse"
	PermissionPayrollViewAll  Permission = "payroll.view_all"

	// Settings / policy
	PermissionSettingsManage Permission = "settings.manage"

	// Kiosk QR display
	PermissionQRDisplay Permission = "qr.display"

	// Dashboard
	PermissionDashboardView Permission = "dashboard.view"
)

// RolePermissions is the single source of authorization truth: every
// operation checks the permitted-operations set derived from the caller's
// role, never ad-hoc identity attributes.
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceScan,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionAttendanceManage,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionPayrollGenerate,
		PermissionPayrollDisburse,
		PermissionPayrollViewAll,
		PermissionSettingsManage,
		PermissionQRDisplay,
		PermissionDashboardView,
	},
	RoleEmployee: {
		PermissionAttendanceScan,
		PermissionAttendanceViewOwn,
		PermissionDashboardView,
	},
}

// HasPermission checks whether a role grants a permission.
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// IsValidRole reports whether the given role is one the system knows.
func IsValidRole(role Role) bool {
	return role == RoleAdmin || role == RoleEmployee
}
