package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/teamwork-api/internal/domain"
	"github.com/phrazzld/teamwork-api/internal/mocks"
)

func TestAuthorizerRoleOf(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	authz := NewAuthorizer(mocks.RoleMap(map[int64]domain.Role{
		1: domain.RoleOwner,
		2: domain.RoleManager,
		3: domain.RoleMember,
	}))

	role, err := authz.RoleOf(ctx, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOwner, role)

	_, err = authz.RoleOf(ctx, 10, 99)
	assert.ErrorIs(t, err, ErrNotTeamMember)
}

func TestAuthorizerRequireRole(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	authz := NewAuthorizer(mocks.RoleMap(map[int64]domain.Role{
		1: domain.RoleOwner,
		2: domain.RoleManager,
		3: domain.RoleMember,
	}))

	tests := []struct {
		name    string
		userID  int64
		allowed []domain.Role
		wantErr error
	}{
		{"owner passes owners only", 1, OwnersOnly, nil},
		{"manager fails owners only", 2, OwnersOnly, ErrForbidden},
		{"member fails owners only", 3, OwnersOnly, ErrForbidden},
		{"owner passes managers and up", 1, ManagersAndUp, nil},
		{"manager passes managers and up", 2, ManagersAndUp, nil},
		{"member fails managers and up", 3, ManagersAndUp, ErrForbidden},
		{"member passes any member", 3, AnyMember, nil},
		{"non-member fails any member", 99, AnyMember, ErrNotTeamMember},
		{"non-member fails owners only", 99, OwnersOnly, ErrNotTeamMember},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := authz.RequireRole(ctx, 10, tc.userID, tc.allowed)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestAuthorizerRequireMember(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	authz := NewAuthorizer(mocks.RoleMap(map[int64]domain.Role{
		3: domain.RoleMember,
	}))

	assert.NoError(t, authz.RequireMember(ctx, 10, 3))
	assert.ErrorIs(t, authz.RequireMember(ctx, 10, 4), ErrNotTeamMember)
}
