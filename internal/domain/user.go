package domain

import (
	"errors"
	"strings"
	"time"
)

// Validation errors for User fields.
var (
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrEmptyFullName    = errors.New("full name cannot be empty")
	ErrFullNameTooShort = errors.New("full name must be at least 2 characters")
	ErrFullNameTooLong  = errors.New("full name must be at most 100 characters")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong  = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword    = errors.New("password cannot be empty")
)

// UserRole distinguishes platform administrators from regular users. It is
// independent of team roles, which are per-membership.
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

// Valid reports whether the role is one of the closed set.
func (r UserRole) Valid() bool {
	return r == UserRoleAdmin || r == UserRoleUser
}

// User represents a registered account. The ID is assigned by the store on
// creation and is zero until then.
type User struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	FullName       string     `json:"full_name"`
	Password       string     `json:"-"` // Plaintext, present only during registration
	HashedPassword string     `json:"-"` // Never expose the hash in JSON
	Role           UserRole   `json:"role"`
	CreatedAt      time.Time  `json:"created_at"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
}

// NewUser creates a User pending persistence. The caller is responsible for
// hashing the plaintext password before handing the user to a store.
func NewUser(email, fullName, password string) (*User, error) {
	user := &User{
		Email:     email,
		FullName:  fullName,
		Password:  password,
		Role:      UserRoleUser,
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks the User's fields. A user loaded from the store carries a
// hashed password and no plaintext; a user mid-registration carries the
// reverse. Either combination is acceptable, having neither is not.
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	switch n := len(strings.TrimSpace(u.FullName)); {
	case n == 0:
		return ErrEmptyFullName
	case n < 2:
		return ErrFullNameTooShort
	case n > 100:
		return ErrFullNameTooLong
	}

	if !u.Role.Valid() {
		return ErrInvalidRole
	}

	if u.Password != "" {
		if len(u.Password) < 6 {
			return ErrPasswordTooShort
		}
		// bcrypt truncates input beyond 72 bytes
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// validEmailFormat performs a structural check: a single '@' with a non-empty
// local part and a dotted domain. Stricter validation happens at the request
// layer via the validator package.
func validEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
