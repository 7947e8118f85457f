package service

import (
	"github.com/google/uuid"

	"claimdesk/internal/domain"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	Role     domain.UserRole
}

// claimScope restricts a claim filter to what the actor may see.
// Clients see their own claims and staff see the claims assigned to them.
func claimScope(actor Actor, filter domain.ClaimFilter) domain.ClaimFilter {
	filter.ScopeClientID = nil
	filter.ScopeAgentID = nil
	switch actor.Role {
	case domain.RoleClient:
		id := actor.UserID
		filter.ScopeClientID = &id
	case domain.RoleStaff:
		id := actor.UserID
		filter.ScopeAgentID = &id
	}
	return filter
}

// canSeeClaim applies the same rule as claimScope to a single claim.
func canSeeClaim(actor Actor, claim *domain.Claim) bool {
	if claim.TenantID != actor.TenantID {
		return false
	}
	switch actor.Role {
	case domain.RoleClient:
		return claim.ClientID == actor.UserID
	case domain.RoleStaff:
		return claim.AssignedAgentID != nil && *claim.AssignedAgentID == actor.UserID
	default:
		return actor.Role.IsAdmin()
	}
}
