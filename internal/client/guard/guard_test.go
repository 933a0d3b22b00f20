package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkalinins/commportal/internal/client/session"
	"github.com/mkalinins/commportal/internal/portal"
)

func snap(user *portal.User, loading, pending2FA bool) session.Snapshot {
	return session.Snapshot{User: user, IsLoading: loading, Requires2FA: pending2FA}
}

func withRole(role portal.Role) *portal.User {
	return &portal.User{ID: "1", Email: "u@example.com", Name: "U", Role: role}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		st       session.Snapshot
		required portal.Role
		want     Decision
	}{
		{"loading_shows_indicator", snap(nil, true, false), "", ShowLoading},
		{"loading_wins_over_role", snap(withRole(portal.RoleAdmin), true, false), portal.RoleAdmin, ShowLoading},
		{"anonymous_redirects_to_login", snap(nil, false, false), "", RedirectLogin},
		{"anonymous_with_role_still_login", snap(nil, false, false), portal.RoleAdmin, RedirectLogin},
		{"pending_2fa_is_not_authenticated", snap(nil, false, true), "", RedirectLogin},
		{"authenticated_no_role_renders", snap(withRole(portal.RoleMember), false, false), "", Render},
		{"member_denied_board", snap(withRole(portal.RoleMember), false, false), portal.RoleBoard, RedirectHome},
		{"member_denied_admin", snap(withRole(portal.RoleMember), false, false), portal.RoleAdmin, RedirectHome},
		{"board_allowed_board", snap(withRole(portal.RoleBoard), false, false), portal.RoleBoard, Render},
		{"board_denied_admin", snap(withRole(portal.RoleBoard), false, false), portal.RoleAdmin, RedirectHome},
		{"admin_allowed_everywhere", snap(withRole(portal.RoleAdmin), false, false), portal.RoleAdmin, Render},
		{"admin_allowed_board_section", snap(withRole(portal.RoleAdmin), false, false), portal.RoleBoard, Render},
		{"unknown_role_denied", snap(withRole(portal.Role("guest")), false, false), portal.RoleMember, RedirectHome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.st, tt.required))
		})
	}
}

// A role that can open a view can also open every view with a weaker
// requirement.
func TestEvaluate_Monotonic(t *testing.T) {
	requirements := []portal.Role{portal.RoleMember, portal.RoleBoard, portal.RoleAdmin}
	for _, userRole := range requirements {
		st := snap(withRole(userRole), false, false)
		for i, req := range requirements {
			if Evaluate(st, req) == Render {
				for _, weaker := range requirements[:i] {
					assert.Equal(t, Render, Evaluate(st, weaker),
						"role %s renders %s but not weaker %s", userRole, req, weaker)
				}
			}
		}
	}
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "render", Render.String())
	assert.Equal(t, "loading", ShowLoading.String())
	assert.Equal(t, "redirect-login", RedirectLogin.String())
	assert.Equal(t, "redirect-home", RedirectHome.String())
	assert.Equal(t, "unknown", Decision(42).String())
}
