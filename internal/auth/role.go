package auth

// Role is the access level a token carries.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleTreasurer Role = "treasurer"
	RoleViewer    Role = "viewer"
)

// Capability is an action a route requires.
type Capability string

const (
	CapRead     Capability = "read"
	CapPost     Capability = "post" // Payments, fines, loans, repayments, registrations
	CapSweep    Capability = "sweep"
	CapImport   Capability = "import"
	CapSettings Capability = "settings"
)

var grants = map[Role][]Capability{
	RoleAdmin:     {CapRead, CapPost, CapSweep, CapImport, CapSettings},
	RoleTreasurer: {CapRead, CapPost, CapSweep, CapImport},
	RoleViewer:    {CapRead},
}

func ParseRole(s string) (Role, bool) {
	r := Role(s)
	_, ok := grants[r]

	return r, ok
}

// Can reports whether r is granted c.
func (r Role) Can(c Capability) bool {
	for _, g := range grants[r] {
		if g == c {
			return true
		}
	}

	return false
}
