package domain

// Role is the closed set of organizational profiles. Visibility rules hang off
// the role rather than ad-hoc string comparisons in query code.
type Role string

const (
	RoleEmployee     Role = "EMPLOYEE"
	RoleAnalyst      Role = "ANALYST"
	RoleManager      Role = "MANAGER"
	RoleFieldService Role = "FIELD_SERVICE"
	RoleAdmin        Role = "ADMIN"
)

// ParseRole maps a stored profile string onto the closed enum. Unknown
// profiles degrade to the least-privileged role.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAnalyst, RoleManager, RoleFieldService, RoleAdmin:
		return Role(s)
	default:
		return RoleEmployee
	}
}

// TicketScope describes which tickets a viewer may list. Exactly one of the
// three shapes applies: everything, a manager's reports plus their own, or
// own tickets only.
type TicketScope struct {
	All         bool
	RequesterID int64
	ManagerName string
}

// Scope returns the listing scope for a viewer with this role.
func (r Role) Scope(viewerID int64, viewerName string) TicketScope {
	switch r {
	case RoleFieldService, RoleAdmin:
		return TicketScope{All: true}
	case RoleManager:
		return TicketScope{RequesterID: viewerID, ManagerName: viewerName}
	default:
		return TicketScope{RequesterID: viewerID}
	}
}

// CanView is the per-role visibility predicate for a single ticket. Managers
// see tickets whose requester reports to them plus their own; elevated roles
// see everything; everyone else sees only tickets they opened.
func (r Role) CanView(viewerID int64, viewerName string, t *Ticket) bool {
	switch r {
	case RoleFieldService, RoleAdmin:
		return true
	case RoleManager:
		return t.RequesterID == viewerID || t.Manager == viewerName
	default:
		return t.RequesterID == viewerID
	}
}
