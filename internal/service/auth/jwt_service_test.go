package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/teamwork-api/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "0123456789abcdef0123456789abcdef",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	}
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		svc, err := NewJWTService(testAuthConfig())
		require.NoError(t, err)
		assert.Equal(t, time.Hour, svc.AccessTokenLifetime())
	})

	t.Run("short secret is rejected", func(t *testing.T) {
		t.Parallel()
		cfg := testAuthConfig()
		cfg.JWTSecret = "too-short"
		_, err := NewJWTService(cfg)
		assert.Error(t, err)
	})
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	token, err := svc.GenerateToken(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	token, err := svc.GenerateRefreshToken(ctx, 7)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestTokenTypeEnforcement(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	access, err := svc.GenerateToken(ctx, 1)
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(ctx, 1)
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateRefreshToken(ctx, access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestExpiredToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	impl, ok := svc.(*hmacJWTService)
	require.True(t, ok)

	// Issue a token in the past, then validate with real time. The lifetime
	// plus clock skew has long elapsed.
	issuedAt := time.Now().Add(-48 * time.Hour)
	impl.timeFunc = func() time.Time { return issuedAt }
	token, err := svc.GenerateToken(ctx, 5)
	require.NoError(t, err)

	impl.timeFunc = time.Now
	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)

	impl.timeFunc = func() time.Time { return issuedAt }
	refresh, err := svc.GenerateRefreshToken(ctx, 5)
	require.NoError(t, err)

	impl.timeFunc = time.Now
	_, err = svc.ValidateRefreshToken(ctx, refresh)
	assert.ErrorIs(t, err, ErrExpiredRefreshToken)
}

func TestClockSkewLeeway(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	impl := svc.(*hmacJWTService)

	// Token expired one minute ago: inside the two minute leeway.
	issuedAt := time.Now().Add(-61 * time.Minute)
	impl.timeFunc = func() time.Time { return issuedAt }
	token, err := svc.GenerateToken(ctx, 9)
	require.NoError(t, err)

	impl.timeFunc = time.Now
	_, err = svc.ValidateToken(ctx, token)
	assert.NoError(t, err)
}

func TestTamperedToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	token, err := svc.GenerateToken(ctx, 3)
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, token+"x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "ffffffffffffffffffffffffffffffff"
	otherSvc, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	_, err = otherSvc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
