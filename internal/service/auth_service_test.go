package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avertech/teamboard-backend/internal/config"
	"github.com/avertech/teamboard-backend/internal/repository"
	"github.com/avertech/teamboard-backend/internal/types"
)

func testAuthService(t *testing.T) (AuthService, *repository.Repositories) {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiry:     1,
		RefreshExpiry: 1,
	}
	repos := repository.NewRepositories()
	return NewAuthService(cfg, repos.UserRepo), repos
}

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	auth, _ := testAuthService(t)

	user, err := auth.Signup(ctx, "anita", "anita@example.com", "secret123", "")
	require.NoError(t, err)
	assert.Equal(t, types.AccountRoleUser, user.Role)
	assert.NotEqual(t, "secret123", user.Password, "password must be hashed")

	loggedIn, token, refreshToken, err := auth.Login(ctx, "anita@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, refreshToken)
}

func TestSignupDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	auth, _ := testAuthService(t)

	_, err := auth.Signup(ctx, "anita", "anita@example.com", "secret123", "")
	require.NoError(t, err)

	_, err = auth.Signup(ctx, "other", "anita@example.com", "secret456", "")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	ctx := context.Background()
	auth, _ := testAuthService(t)

	_, err := auth.Signup(ctx, "anita", "anita@example.com", "secret123", "owner")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	auth, _ := testAuthService(t)

	_, err := auth.Signup(ctx, "anita", "anita@example.com", "secret123", "")
	require.NoError(t, err)

	_, _, _, err = auth.Login(ctx, "anita@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, _, err = auth.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenCarriesClaims(t *testing.T) {
	ctx := context.Background()
	auth, _ := testAuthService(t)

	user, err := auth.Signup(ctx, "admin", "admin@example.com", "secret123", types.AccountRoleAdmin)
	require.NoError(t, err)

	_, token, _, err := auth.Login(ctx, "admin@example.com", "secret123")
	require.NoError(t, err)

	parsed, err := auth.ValidateToken(token)
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	userID, role, err := auth.ClaimsFromToken(parsed)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, types.AccountRoleAdmin, role)
}

func TestRefreshTokenRotation(t *testing.T) {
	ctx := context.Background()
	auth, _ := testAuthService(t)

	_, err := auth.Signup(ctx, "anita", "anita@example.com", "secret123", "")
	require.NoError(t, err)

	_, _, refreshToken, err := auth.Login(ctx, "anita@example.com", "secret123")
	require.NoError(t, err)

	newToken, newRefreshToken, err := auth.RefreshToken(ctx, refreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, newToken)
	assert.NotEqual(t, refreshToken, newRefreshToken)

	// The old refresh token is single-use.
	_, _, err = auth.RefreshToken(ctx, refreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	ctx := context.Background()
	auth, _ := testAuthService(t)

	_, err := auth.Signup(ctx, "anita", "anita@example.com", "secret123", "")
	require.NoError(t, err)

	_, _, refreshToken, err := auth.Login(ctx, "anita@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, refreshToken))

	_, _, err = auth.RefreshToken(ctx, refreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
