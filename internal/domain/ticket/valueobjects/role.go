package valueobjects

import "fmt"

// Role is the self-selected access mode of the caller. It scopes column
// visibility and edit rights; it is not an authentication boundary.
type Role string

const (
	RoleBranchManager Role = "branch_manager"
	RoleCMStaff       Role = "cm_staff"
	RoleSupervisor    Role = "supervisor"
)

var validRoles = map[Role]bool{
	RoleBranchManager: true,
	RoleCMStaff:       true,
	RoleSupervisor:    true,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return validRoles[r]
}

func (r Role) IsBranchManager() bool {
	return r == RoleBranchManager
}

func (r Role) IsCMStaff() bool {
	return r == RoleCMStaff
}

func (r Role) IsSupervisor() bool {
	return r == RoleSupervisor
}

func NewRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return r, nil
}
