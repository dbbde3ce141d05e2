package auth

// Staff is the domain entity.
type Staff struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     string
}

// Staff roles. Managers can edit the menu and promos, baristas work orders.
const (
	RoleBarista = "BARISTA"
	RoleManager = "MANAGER"
)

func ValidRole(role string) bool {
	return role == RoleBarista || role == RoleManager
}
