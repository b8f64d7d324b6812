package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type revokedSet map[string]bool

func (r revokedSet) IsTokenRevoked(_ context.Context, tokenID string) (bool, error) {
	return r[tokenID], nil
}

func newTestApp(m Middleware, jwtService jwt.JWTService) *fiber.App {
	app := fiber.New()
	app.Get("/private", m.AuthMiddleware(jwtService), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(string))
	})
	app.Get("/public", m.OptionalAuth(jwtService), func(c *fiber.Ctx) error {
		id, _ := c.Locals("user_id").(string)
		return c.SendString("viewer:" + id)
	})
	app.Get("/admin", m.AuthMiddleware(jwtService), m.OnlyAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/admin-unauthenticated", m.OnlyAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func do(t *testing.T, app *fiber.App, path, auth string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := jwt.NewJWTService("middleware-secret", time.Hour)
	revoked := revokedSet{}
	app := newTestApp(NewMiddleware(revoked, nil), jwtService)

	userID := uuid.NewString()
	token, err := jwtService.GenerateTokenUser(userID, domain.RoleUser)
	require.NoError(t, err)

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "/private", "").StatusCode)
	})

	t.Run("token scheme", func(t *testing.T) {
		assert.Equal(t, fiber.StatusOK, do(t, app, "/private", "Token "+token).StatusCode)
	})

	t.Run("bearer scheme", func(t *testing.T) {
		assert.Equal(t, fiber.StatusOK, do(t, app, "/private", "Bearer "+token).StatusCode)
	})

	t.Run("unknown scheme", func(t *testing.T) {
		assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "/private", "Basic "+token).StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "/private", "Token not-a-jwt").StatusCode)
	})

	t.Run("revoked token", func(t *testing.T) {
		claims, err := jwtService.GetClaimsByToken(token)
		require.NoError(t, err)
		revoked[claims.ID] = true
		defer delete(revoked, claims.ID)

		assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "/private", "Token "+token).StatusCode)
	})
}

func TestOptionalAuth(t *testing.T) {
	jwtService := jwt.NewJWTService("middleware-secret", time.Hour)
	app := newTestApp(NewMiddleware(revokedSet{}, nil), jwtService)

	assert.Equal(t, fiber.StatusOK, do(t, app, "/public", "").StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "/public", "Token broken").StatusCode)

	token, err := jwtService.GenerateTokenUser(uuid.NewString(), domain.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, do(t, app, "/public", "Token "+token).StatusCode)
}

func TestOnlyAdmin(t *testing.T) {
	jwtService := jwt.NewJWTService("middleware-secret", time.Hour)
	app := newTestApp(NewMiddleware(revokedSet{}, nil), jwtService)

	userToken, err := jwtService.GenerateTokenUser(uuid.NewString(), domain.RoleUser)
	require.NoError(t, err)
	adminToken, err := jwtService.GenerateTokenUser(uuid.NewString(), domain.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusForbidden, do(t, app, "/admin", "Token "+userToken).StatusCode)
	assert.Equal(t, fiber.StatusNoContent, do(t, app, "/admin", "Token "+adminToken).StatusCode)
	// without an authenticated principal the gate stays closed
	assert.Equal(t, fiber.StatusForbidden, do(t, app, "/admin-unauthenticated", "Token "+adminToken).StatusCode)
}

func TestPrincipalIsAdmin(t *testing.T) {
	var missing *domain.Principal
	assert.False(t, missing.IsAdmin())
	assert.False(t, (&domain.Principal{Role: domain.RoleUser}).IsAdmin())
	assert.True(t, (&domain.Principal{Role: domain.RoleAdmin}).IsAdmin())
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Token abc", "abc"},
		{"Bearer abc", "abc"},
		{"bearer   abc ", "abc"},
		{"abc", ""},
		{"Basic abc", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bearerToken(tt.header), tt.header)
	}
}
