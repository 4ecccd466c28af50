// Package authz holds the role model and the pure ownership policy gating
// candidate and dossier access. Role lookups stay in the repository layer;
// every function here is side-effect free.
package authz

import "strings"

type Role string

const (
	RoleAdmin           Role = "admin"
	RoleBusinessManager Role = "business_manager"
	RoleConsultant      Role = "consultant"
)

// ValidRole reports whether r belongs to the closed role set.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleBusinessManager, RoleConsultant:
		return true
	}
	return false
}

// Principal is the caller identity resolved by the HTTP layer and threaded
// explicitly through every usecase call.
type Principal struct {
	ID       string
	Email    string
	FullName string
}

// RoleSet is a user's current role assignment. The empty set is valid and
// means least privilege.
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

func (s RoleSet) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

func (s RoleSet) IsAdmin() bool { return s.Has(RoleAdmin) }

// DefaultRole is the role granted on first sign-in: admin for the bootstrap
// email, consultant for everyone else.
func DefaultRole(email, bootstrapAdminEmail string) Role {
	if bootstrapAdminEmail != "" && strings.EqualFold(email, bootstrapAdminEmail) {
		return RoleAdmin
	}
	return RoleConsultant
}

// CanManageCandidate reports whether the actor may read or mutate a candidate:
// admins always, the owning manager, or the candidate themselves (matched by
// email, the self-service consultant case).
func CanManageCandidate(actor Principal, roles RoleSet, managerID, candidateEmail string) bool {
	if roles.IsAdmin() {
		return true
	}
	if actor.ID == managerID {
		return true
	}
	return candidateEmail != "" && strings.EqualFold(actor.Email, candidateEmail)
}

// CanManageProfile reports whether the actor may read or mutate a dossier:
// admins always, otherwise only the owning manager.
func CanManageProfile(actor Principal, roles RoleSet, managerID string) bool {
	if roles.IsAdmin() {
		return true
	}
	return actor.ID == managerID
}
