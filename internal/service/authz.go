package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/teamwork-api/internal/domain"
	"github.com/phrazzld/teamwork-api/internal/store"
)

// Role sets used by the lifecycle services. Every authorization decision in
// the module reduces to "is the caller's role in this set".
var (
	// AnyMember permits owners, managers, and members.
	AnyMember = []domain.Role{domain.RoleOwner, domain.RoleManager, domain.RoleMember}

	// ManagersAndUp permits owners and managers.
	ManagersAndUp = []domain.Role{domain.RoleOwner, domain.RoleManager}

	// OwnersOnly permits owners.
	OwnersOnly = []domain.Role{domain.RoleOwner}
)

// Authorizer resolves a user's role within a team and enforces role
// requirements. Callers are expected to verify the target entity exists
// before consulting the authorizer, so that unknown entities surface as
// not-found rather than leaking through a permission error.
type Authorizer struct {
	members store.MembershipStore
}

// NewAuthorizer creates an Authorizer backed by the given membership store.
func NewAuthorizer(members store.MembershipStore) *Authorizer {
	return &Authorizer{members: members}
}

// RoleOf returns the user's role in the team, or ErrNotTeamMember if the
// user has no membership row.
func (a *Authorizer) RoleOf(ctx context.Context, teamID, userID int64) (domain.Role, error) {
	member, err := a.members.Get(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrNotTeamMember
		}
		return "", fmt.Errorf("resolving role: %w", err)
	}
	return member.Role, nil
}

// RequireMember returns nil if the user holds any role in the team.
func (a *Authorizer) RequireMember(ctx context.Context, teamID, userID int64) error {
	_, err := a.RoleOf(ctx, teamID, userID)
	return err
}

// RequireRole returns nil if the user's role in the team is one of the
// allowed roles. A missing membership yields ErrNotTeamMember; an
// insufficient role yields ErrForbidden.
func (a *Authorizer) RequireRole(ctx context.Context, teamID, userID int64, allowed []domain.Role) error {
	role, err := a.RoleOf(ctx, teamID, userID)
	if err != nil {
		return err
	}
	for _, r := range allowed {
		if role == r {
			return nil
		}
	}
	return ErrForbidden
}
