package rbac

// Role names. Keep these stable; they come from the upstream API's user
// payload and gate the back-office.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

func IsAdmin(role string) bool { return role == RoleAdmin }
