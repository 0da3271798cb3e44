package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Shift Management
	PermissionShiftViewOwn Permission = "shift.view_own"
	PermissionShiftClock   Permission = "shift.clock"
	PermissionShiftViewAll Permission = "shift.view_all"
	PermissionShiftManage  Permission = "shift.manage"

	// Reports
	PermissionReportsView Permission = "reports.view"

	// User Management
	PermissionUserViewAll Permission = "user.view_all"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionShiftViewOwn,
		PermissionShiftClock,
		PermissionShiftViewAll,
		PermissionShiftManage,
		PermissionReportsView,
		PermissionUserViewAll,
	},
	RoleManager: {
		PermissionViewOwnProfile,
		PermissionShiftViewOwn,
		PermissionShiftClock,
		PermissionShiftViewAll,
		PermissionShiftManage,
		PermissionReportsView,
		PermissionUserViewAll,
	},
	RoleStaff: {
		PermissionViewOwnProfile,
		PermissionShiftViewOwn,
		PermissionShiftClock,
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
