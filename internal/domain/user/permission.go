package user

type Permission string

const (
	PermissionAttendanceCheckIn Permission = "attendance.checkin"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceManage  Permission = "attendance.manage"
	PermissionAttendanceApprove Permission = "attendance.approve"

	PermissionContentManage Permission = "content.manage"
	PermissionContactManage Permission = "contact.manage"
	PermissionDashboardView Permission = "dashboard.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {
		PermissionAttendanceCheckIn,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionAttendanceManage,
		PermissionAttendanceApprove,
		PermissionContentManage,
		PermissionContactManage,
		PermissionDashboardView,
	},
	RoleAdmin: {
		PermissionAttendanceCheckIn,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionAttendanceManage,
		PermissionAttendanceApprove,
		PermissionContentManage,
		PermissionContactManage,
		PermissionDashboardView,
	},
	RoleUser: {
		PermissionAttendanceCheckIn,
		PermissionAttendanceViewOwn,
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
