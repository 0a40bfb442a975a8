package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleModerator.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("owner").Valid())
	assert.False(t, Role("").Valid())
}

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleModerator}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())

	// the superuser flag grants admin regardless of role
	assert.True(t, (&User{Role: RoleUser, Superuser: true}).IsAdmin())
}

func TestUser_IsModerator(t *testing.T) {
	assert.True(t, (&User{Role: RoleModerator}).IsModerator())
	assert.False(t, (&User{Role: RoleAdmin}).IsModerator())
	assert.False(t, (&User{Role: RoleUser, Superuser: true}).IsModerator())
}
