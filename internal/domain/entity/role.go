package entity

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleStudent is the implicit role of every invited roster member.
	RoleStudent Role = "student"
	// RoleAdmin manages schools, rosters, design settings and the storefront.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleAdmin:
		return true
	default:
		return false
	}
}

// RoleFromString converts a claim value to a Role, falling back to RoleStudent.
func RoleFromString(s string) Role {
	role := Role(s)
	if !role.IsValid() {
		return RoleStudent
	}

	return role
}
