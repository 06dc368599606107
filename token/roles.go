package token

// Role represents a user role carried in the groups claim. A user may
// hold several roles at once; the set carries no precedence.
type Role string

const (
	RoleDoctor  Role = "doctor"
	RoleStaff   Role = "staff"
	RolePatient Role = "patient"

	// RoleUnknown is returned by RoleFrom for strings outside the closed
	// set. It never appears in a decoded role set.
	RoleUnknown Role = "unknown"
)

// RoleFrom maps a raw claim string onto the closed role set.
func RoleFrom(s string) Role {
	switch Role(s) {
	case RoleDoctor, RoleStaff, RolePatient:
		return Role(s)
	default:
		return RoleUnknown
	}
}

// HasRole reports whether role is present in roles.
func HasRole(roles []Role, role Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func rolesFromClaim(groups []any) []Role {
	roles := make([]Role, 0, len(groups))
	for _, g := range groups {
		s, ok := g.(string)
		if !ok {
			continue
		}
		if role := RoleFrom(s); role != RoleUnknown {
			roles = append(roles, role)
		}
	}
	return roles
}
