// Package auth provides token issuance/validation and password hashing for
// the API's identity layer.
package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the user.
	GenerateToken(ctx context.Context, userID int64) (string, error)

	// ValidateToken validates an access token string and extracts the claims.
	// Returns an error if validation fails (expired, invalid signature,
	// wrong token type, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken creates a signed JWT refresh token for the user.
	// Refresh tokens have a longer lifetime and are exchanged for new access
	// tokens.
	GenerateRefreshToken(ctx context.Context, userID int64) (string, error)

	// ValidateRefreshToken validates a refresh token string and extracts the
	// claims.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)

	// AccessTokenLifetime returns the configured access token lifetime, used
	// by the API layer to report token expiry to clients.
	AccessTokenLifetime() time.Duration
}

// Claims is the validated content of a token.
type Claims struct {
	// UserID is the user the token was issued for.
	UserID int64 `json:"uid,omitempty"`

	// TokenType indicates the purpose of the token ("access" or "refresh").
	// Used to prevent token misuse across contexts.
	TokenType string `json:"type,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
