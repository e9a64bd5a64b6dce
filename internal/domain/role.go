package domain

import "fmt"

// Role classifies the acting staff member. The set is closed: external input
// is parsed exactly once at the boundary via ParseRole, and every internal
// function takes the typed value, never a raw string.
type Role string

const (
	// SUPER - head office, may move orders in any direction
	RoleSuper Role = "SUPER"
	// ORIGIN_BRANCH_ADMIN - staff at the origin branch
	RoleOriginBranchAdmin Role = "ORIGIN_BRANCH_ADMIN"
	// DESTINATION_BRANCH_ADMIN - staff at the destination branch
	RoleDestinationBranchAdmin Role = "DESTINATION_BRANCH_ADMIN"
	// READONLY_VIEWER - may look but never mutate
	RoleReadonlyViewer Role = "READONLY_VIEWER"
)

// IsValid checks if the role is one of the closed set.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuper, RoleOriginBranchAdmin, RoleDestinationBranchAdmin, RoleReadonlyViewer:
		return true
	default:
		return false
	}
}

// ParseRole converts an externally supplied role string into the closed Role
// set. Legacy branch-admin spellings from the old dashboard are accepted so
// existing sessions keep working.
func ParseRole(raw string) (Role, error) {
	switch raw {
	case string(RoleSuper), "super_admin":
		return RoleSuper, nil
	case string(RoleOriginBranchAdmin), "thai_admin", "branch_admin_th":
		return RoleOriginBranchAdmin, nil
	case string(RoleDestinationBranchAdmin), "lao_admin", "branch_admin_la":
		return RoleDestinationBranchAdmin, nil
	case string(RoleReadonlyViewer), "viewer":
		return RoleReadonlyViewer, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}
