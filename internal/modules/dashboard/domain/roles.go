package domain

import "strings"

// Role is the staff or guest role carried by a session.
type Role string

const (
	RoleUnknown         Role = ""
	RoleAdmin           Role = "ADMIN"
	RoleManager         Role = "MANAGER"
	RoleFrontDesk       Role = "FRONT_DESK"
	RolePaymentOfficer  Role = "PAYMENT_OFFICER"
	RoleBackOfficeStaff Role = "BACK_OFFICE_STAFF"
	RoleGuest           Role = "GUEST"
)

var knownRoles = map[Role]struct{}{
	RoleAdmin:           {},
	RoleManager:         {},
	RoleFrontDesk:       {},
	RolePaymentOfficer:  {},
	RoleBackOfficeStaff: {},
	RoleGuest:           {},
}

// ParseRole accepts "front desk", "front-desk" and "FRONT_DESK" alike. Unknown input yields RoleUnknown.
func ParseRole(raw string) Role {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	normalized = strings.TrimPrefix(normalized, "ROLE_")
	if _, ok := knownRoles[Role(normalized)]; ok {
		return Role(normalized)
	}
	return RoleUnknown
}

// RoleSet is the set of roles a dashboard admits.
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		if r != RoleUnknown {
			set[r] = struct{}{}
		}
	}
	return set
}

// Allows reports membership. An empty set admits any known role.
func (s RoleSet) Allows(r Role) bool {
	if r == RoleUnknown {
		return false
	}
	if len(s) == 0 {
		return true
	}
	_, ok := s[r]
	return ok
}
