package portal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleLevels(t *testing.T) {
	assert.Less(t, RoleMember.Level(), RoleBoard.Level())
	assert.Less(t, RoleBoard.Level(), RoleAdmin.Level())
}

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		required Role
		want     bool
	}{
		{"member_vs_member", RoleMember, RoleMember, true},
		{"member_vs_board", RoleMember, RoleBoard, false},
		{"member_vs_admin", RoleMember, RoleAdmin, false},
		{"board_vs_member", RoleBoard, RoleMember, true},
		{"board_vs_board", RoleBoard, RoleBoard, true},
		{"board_vs_admin", RoleBoard, RoleAdmin, false},
		{"admin_vs_member", RoleAdmin, RoleMember, true},
		{"admin_vs_board", RoleAdmin, RoleBoard, true},
		{"admin_vs_admin", RoleAdmin, RoleAdmin, true},
		{"unknown_role_denied", Role("guest"), RoleMember, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.required))
		})
	}
}

// Access is monotonic: any role passing a check also passes every
// weaker requirement.
func TestRoleAtLeastMonotonic(t *testing.T) {
	ordered := []Role{RoleMember, RoleBoard, RoleAdmin}
	for _, role := range ordered {
		for i, req := range ordered {
			if role.AtLeast(req) {
				for _, weaker := range ordered[:i] {
					assert.True(t, role.AtLeast(weaker),
						"role %s passes %s but not weaker %s", role, req, weaker)
				}
			}
		}
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleMember.Valid())
	assert.True(t, RoleBoard.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("superuser").Valid())
}
