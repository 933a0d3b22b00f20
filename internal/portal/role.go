package portal

// Role is the access level assigned to a portal account. The set is closed
// and totally ordered: member < board < admin.
type Role string

const (
	RoleMember Role = "member"
	RoleBoard  Role = "board"
	RoleAdmin  Role = "admin"
)

// roleLevels fixes the hierarchy used for minimum-privilege checks.
// Levels are only ever compared, never assigned back to a user.
var roleLevels = map[Role]int{
	RoleMember: 1,
	RoleBoard:  2,
	RoleAdmin:  3,
}

// Level returns the numeric rank of the role. Unknown roles rank 0,
// below every valid role, so they never pass an AtLeast check.
func (r Role) Level() int {
	return roleLevels[r]
}

// AtLeast reports whether r grants at least the privileges of required.
func (r Role) AtLeast(required Role) bool {
	return r.Level() >= required.Level()
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}
