package permissions_test

import (
	"net/http"
	"testing"

	"hotel/permissions"
	"hotel/shared/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	assert.False(t, data.Skip)
	assert.NotEmpty(t, data.Endpoints)
}

func TestPermissionData_FindPermissions(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	login := data.FindPermissions("/v1/auth/login", http.MethodPost)
	assert.True(t, login.Skip)

	deleteStaff := data.FindPermissions("/v1/staff/{id}", http.MethodDelete)
	assert.Equal(t, []string{constant.RoleSuperAdmin}, deleteStaff.Permissions)

	createBooking := data.FindPermissions("/v1/bookings/", http.MethodPost)
	assert.False(t, createBooking.Skip)
	assert.Empty(t, createBooking.Permissions)
}
