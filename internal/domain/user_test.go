package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid user", func(t *testing.T) {
		t.Parallel()
		user, err := NewUser("jane@example.com", "Jane Doe", "password123")
		require.NoError(t, err)
		assert.Equal(t, UserRoleUser, user.Role)
		assert.Equal(t, "jane@example.com", user.Email)
	})

	tests := []struct {
		name     string
		email    string
		fullName string
		password string
		wantErr  error
	}{
		{"empty email", "", "Jane Doe", "password123", ErrEmptyEmail},
		{"malformed email", "not-an-email", "Jane Doe", "password123", ErrInvalidEmail},
		{"missing domain dot", "jane@example", "Jane Doe", "password123", ErrInvalidEmail},
		{"empty name", "jane@example.com", "  ", "password123", ErrEmptyFullName},
		{"name too short", "jane@example.com", "J", "password123", ErrFullNameTooShort},
		{"name too long", "jane@example.com", strings.Repeat("a", 101), "password123", ErrFullNameTooLong},
		{"password too short", "jane@example.com", "Jane Doe", "pass", ErrPasswordTooShort},
		{"password too long", "jane@example.com", "Jane Doe", strings.Repeat("p", 73), ErrPasswordTooLong},
		{"empty password", "jane@example.com", "Jane Doe", "", ErrEmptyPassword},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewUser(tc.email, tc.fullName, tc.password)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUserValidateStoredUser(t *testing.T) {
	t.Parallel()

	// A user hydrated from the store has a hash and no plaintext.
	user := &User{
		Email:          "jane@example.com",
		FullName:       "Jane Doe",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
		Role:           UserRoleUser,
	}
	assert.NoError(t, user.Validate())
}
