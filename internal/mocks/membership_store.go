package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/teamwork-api/internal/domain"
	"github.com/phrazzld/teamwork-api/internal/store"
)

// MockMembershipStore implements store.MembershipStore for testing.
type MockMembershipStore struct {
	AddFn         func(ctx context.Context, member *domain.TeamMember) error
	GetFn         func(ctx context.Context, teamID, userID int64) (*domain.TeamMember, error)
	ListByTeamFn  func(ctx context.Context, teamID int64) ([]*store.MemberWithUser, error)
	UpdateRoleFn  func(ctx context.Context, teamID, userID int64, role domain.Role) error
	RemoveFn      func(ctx context.Context, teamID, userID int64) error
	CountOwnersFn func(ctx context.Context, teamID int64) (int, error)
	ExistsFn      func(ctx context.Context, teamID, userID int64) (bool, error)
}

var _ store.MembershipStore = (*MockMembershipStore)(nil)

// RoleMap builds a MockMembershipStore whose Get, Exists, and CountOwners
// answer from a static userID to role mapping for one team. Most
// authorization tests need exactly this.
func RoleMap(roles map[int64]domain.Role) *MockMembershipStore {
	return &MockMembershipStore{
		GetFn: func(ctx context.Context, teamID, userID int64) (*domain.TeamMember, error) {
			role, ok := roles[userID]
			if !ok {
				return nil, store.ErrMemberNotFound
			}
			return &domain.TeamMember{TeamID: teamID, UserID: userID, Role: role}, nil
		},
		ExistsFn: func(ctx context.Context, teamID, userID int64) (bool, error) {
			_, ok := roles[userID]
			return ok, nil
		},
		CountOwnersFn: func(ctx context.Context, teamID int64) (int, error) {
			count := 0
			for _, role := range roles {
				if role == domain.RoleOwner {
					count++
				}
			}
			return count, nil
		},
	}
}

func (m *MockMembershipStore) Add(ctx context.Context, member *domain.TeamMember) error {
	if m.AddFn != nil {
		return m.AddFn(ctx, member)
	}
	member.ID = 1
	return nil
}

func (m *MockMembershipStore) Get(ctx context.Context, teamID, userID int64) (*domain.TeamMember, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, teamID, userID)
	}
	return nil, store.ErrMemberNotFound
}

func (m *MockMembershipStore) ListByTeam(ctx context.Context, teamID int64) ([]*store.MemberWithUser, error) {
	if m.ListByTeamFn != nil {
		return m.ListByTeamFn(ctx, teamID)
	}
	return nil, nil
}

func (m *MockMembershipStore) UpdateRole(ctx context.Context, teamID, userID int64, role domain.Role) error {
	if m.UpdateRoleFn != nil {
		return m.UpdateRoleFn(ctx, teamID, userID, role)
	}
	return nil
}

func (m *MockMembershipStore) Remove(ctx context.Context, teamID, userID int64) error {
	if m.RemoveFn != nil {
		return m.RemoveFn(ctx, teamID, userID)
	}
	return nil
}

func (m *MockMembershipStore) CountOwners(ctx context.Context, teamID int64) (int, error) {
	if m.CountOwnersFn != nil {
		return m.CountOwnersFn(ctx, teamID)
	}
	return 0, nil
}

func (m *MockMembershipStore) Exists(ctx context.Context, teamID, userID int64) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, teamID, userID)
	}
	return false, nil
}

func (m *MockMembershipStore) WithTx(tx *sql.Tx) store.MembershipStore {
	return m
}
