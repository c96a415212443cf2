package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTeam(t *testing.T) {
	t.Parallel()

	t.Run("valid team", func(t *testing.T) {
		t.Parallel()
		desc := "Backend platform group"
		team, err := NewTeam("Platform", &desc)
		require.NoError(t, err)
		assert.Equal(t, "Platform", team.Name)
		assert.Equal(t, &desc, team.Description)
		assert.False(t, team.CreatedAt.IsZero())
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()
		_, err := NewTeam("   ", nil)
		assert.ErrorIs(t, err, ErrEmptyTeamName)
	})

	t.Run("name too long", func(t *testing.T) {
		t.Parallel()
		_, err := NewTeam(strings.Repeat("a", 101), nil)
		assert.ErrorIs(t, err, ErrTeamNameTooLong)
	})
}

func TestRoleValid(t *testing.T) {
	t.Parallel()

	assert.True(t, RoleOwner.Valid())
	assert.True(t, RoleManager.Valid())
	assert.True(t, RoleMember.Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}

func TestNewTeamMember(t *testing.T) {
	t.Parallel()

	t.Run("valid membership", func(t *testing.T) {
		t.Parallel()
		member, err := NewTeamMember(1, 2, RoleManager)
		require.NoError(t, err)
		assert.Equal(t, int64(1), member.TeamID)
		assert.Equal(t, int64(2), member.UserID)
		assert.Equal(t, RoleManager, member.Role)
	})

	t.Run("invalid role", func(t *testing.T) {
		t.Parallel()
		_, err := NewTeamMember(1, 2, Role("superuser"))
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}
