package libpf

import "github.com/pkg/errors"

// A Role scopes what a logged-in user can do on the portal.
type Role string

const (
	// RoleAdmin can list every paper, list reviewers and assign them.
	RoleAdmin Role = "admin"
	// RoleReviewer can list assigned papers and submit decisions.
	RoleReviewer Role = "reviewer"
	// RoleAuthor can list and submit its own papers.
	RoleAuthor Role = "author"
)

// ParseRole converts the given string into a Role.
// The portal only knows the three roles above, anything else is rejected.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.Valid() {
		return "", errors.Errorf("unknown role: %s", s)
	}
	return role, nil
}

// Valid returns true if the role is one of the portal's roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleReviewer, RoleAuthor:
		return true
	}
	return false
}

// DashboardPath returns the landing page of the role.
func (r Role) DashboardPath() string {
	switch r {
	case RoleAdmin:
		return "/dashboard/admin"
	case RoleReviewer:
		return "/dashboard/reviewer"
	case RoleAuthor:
		return "/dashboard/author"
	}
	return "/"
}
