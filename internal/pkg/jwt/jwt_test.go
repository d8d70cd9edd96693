package jwt

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/novatech-uz/company-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() Service {
	return NewJWTService("test-secret-key", "15m", "168h", true)
}

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := newTestService()

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "admin@example.com", user.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, int64(0))

	parsed, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims, err := parsed.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "admin@example.com", claims["email"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestGenerateAccessToken_BadDuration(t *testing.T) {
	svc := NewJWTService("secret", "soon", "168h", false)

	_, _, err := svc.GenerateAccessToken("user-1", "a@b.c", user.RoleUser)
	assert.Error(t, err)
}

func TestParseRefreshToken(t *testing.T) {
	svc := newTestService()

	refresh, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	userID, err := svc.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestParseRefreshToken_RejectsAccessToken(t *testing.T) {
	svc := newTestService()

	access, _, err := svc.GenerateAccessToken("user-1", "a@b.c", user.RoleUser)
	require.NoError(t, err)

	_, err = svc.ParseRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestParseRefreshToken_RejectsForeignSignature(t *testing.T) {
	other := NewJWTService("another-secret", "15m", "168h", false)
	refresh, _, err := other.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = newTestService().ParseRefreshToken(refresh)
	assert.Error(t, err)
}

func TestGenerateRefreshToken_Unique(t *testing.T) {
	svc := newTestService()

	a, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	b, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestCookies(t *testing.T) {
	svc := newTestService()

	access := svc.AccessTokenCookie("tok", 1700000000)
	assert.Equal(t, AccessTokenCookieName, access.Name)
	assert.Equal(t, "/", access.Path)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)

	refresh := svc.RefreshTokenCookie("tok", 1700000000)
	assert.Equal(t, RefreshTokenCookieName, refresh.Name)
	assert.Equal(t, "/api/v1/auth", refresh.Path)
	assert.Equal(t, http.SameSiteStrictMode, refresh.SameSite)

	cleared := svc.ClearCookies()
	require.Len(t, cleared, 2)
	for _, c := range cleared {
		assert.Empty(t, c.Value)
		assert.Equal(t, -1, c.MaxAge)
	}
}
