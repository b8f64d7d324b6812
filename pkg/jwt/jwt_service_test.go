package jwt

import (
	"testing"
	"time"

	"Foodgram-Backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	token, err := svc.GenerateTokenUser("user-1", domain.RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.GetClaimsByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, "FOODGRAM", claims.Issuer)
}

func TestTokensHaveDistinctIDs(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	a, err := svc.GenerateTokenUser("user-1", domain.RoleUser)
	require.NoError(t, err)
	b, err := svc.GenerateTokenUser("user-1", domain.RoleUser)
	require.NoError(t, err)

	ca, err := svc.GetClaimsByToken(a)
	require.NoError(t, err)
	cb, err := svc.GetClaimsByToken(b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestExpiredToken(t *testing.T) {
	svc := NewJWTService("secret", time.Minute).(*jwtService)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.GenerateTokenUser("user-1", domain.RoleUser)
	require.NoError(t, err)

	_, err = svc.GetClaimsByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestWrongSecret(t *testing.T) {
	token, err := NewJWTService("one", time.Hour).GenerateTokenUser("user-1", domain.RoleUser)
	require.NoError(t, err)

	_, err = NewJWTService("two", time.Hour).GetClaimsByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
