package domain

// Role constants define the user roles the API understands. RoleGuest is the
// implicit role of any request without a valid token and is never persisted.
const (
	RoleGuest    = "guest"
	RoleCustomer = "customer"
	RoleOwner    = "owner"
	RoleAdmin    = "admin"
)

// ValidRoles returns the roles a user may register with.
func ValidRoles() []string {
	return []string{RoleCustomer, RoleOwner, RoleAdmin}
}

// IsValidRole checks whether the given role may be persisted on a user.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles() {
		if r == role {
			return true
		}
	}
	return false
}
