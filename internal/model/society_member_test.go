package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Rank(t *testing.T) {
	assert.Equal(t, 1, RoleAdmin.Rank())
	assert.Equal(t, 2, RoleModerator.Rank())
	assert.Equal(t, 3, RoleMember.Rank())
	assert.Equal(t, 3, Role("unknown").Rank())

	assert.Less(t, RoleAdmin.Rank(), RoleModerator.Rank())
	assert.Less(t, RoleModerator.Rank(), RoleMember.Rank())
}

func TestRoleFromLevel(t *testing.T) {
	tests := []struct {
		level int
		role  Role
		ok    bool
	}{
		{level: 1, role: RoleAdmin, ok: true},
		{level: 2, role: RoleModerator, ok: true},
		{level: 3, role: RoleMember, ok: true},
		{level: 0, ok: false},
		{level: 4, ok: false},
		{level: -1, ok: false},
	}

	for _, tt := range tests {
		role, ok := RoleFromLevel(tt.level)
		assert.Equal(t, tt.ok, ok, "level %d", tt.level)
		assert.Equal(t, tt.role, role, "level %d", tt.level)
		if ok {
			assert.Equal(t, tt.level, role.Level())
		}
	}
}
