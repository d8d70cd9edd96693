package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleUser, PermissionAttendanceCheckIn))
	assert.False(t, HasPermission(RoleUser, PermissionAttendanceApprove))
	assert.True(t, HasPermission(RoleAdmin, PermissionAttendanceApprove))
	assert.True(t, HasPermission(RoleSuperAdmin, PermissionContentManage))
	assert.False(t, HasPermission(Role("guest"), PermissionAttendanceViewOwn))
}

func TestRole(t *testing.T) {
	assert.True(t, RoleSuperAdmin.IsValid())
	assert.False(t, Role("owner").IsValid())

	u := User{Role: RoleSuperAdmin}
	assert.True(t, u.IsAdmin())
	u.Role = RoleUser
	assert.False(t, u.IsAdmin())
}
