package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRolePermissions(t *testing.T) {
	assert.True(t, RoleSales.CanChangeStatus())
	assert.True(t, RoleBackOffice.CanChangeStatus())
	assert.True(t, RoleAdmin.CanChangeStatus())
	assert.False(t, Role("guest").CanChangeStatus())

	assert.False(t, RoleSales.CanVerify())
	assert.True(t, RoleBackOffice.CanVerify())
	assert.True(t, RoleAdmin.CanVerify())
}

func TestNewUserValidation(t *testing.T) {
	_, err := NewUser("", "a@b.com", RoleSales, nil)
	assert.Error(t, err)

	_, err = NewUser("A", "", RoleSales, nil)
	assert.Error(t, err)

	_, err = NewUser("A", "a@b.com", Role("root"), nil)
	assert.Error(t, err)

	u, err := NewUser("A", "a@b.com", RoleBackOffice, []ServiceType{ServiceLoan})
	assert.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, []ServiceType{ServiceLoan}, u.ServiceTypes)
}
