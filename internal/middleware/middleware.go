package middleware

import (
	"context"
	"strings"
	"time"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/api/presenters"
	"Foodgram-Backend/internal/metrics"
	"Foodgram-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	// TokenRevocation reports whether a token id was logged out.
	TokenRevocation interface {
		IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
	}

	Middleware interface {
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		OptionalAuth(jwtService jwt.JWTService) fiber.Handler
		OnlyAdmin() fiber.Handler
		CORSMiddleware() fiber.Handler
		Prometheus() fiber.Handler
	}

	middleware struct {
		revocation  TokenRevocation
		corsOrigins []string
	}
)

func NewMiddleware(revocation TokenRevocation, corsOrigins []string) Middleware {
	return &middleware{
		revocation:  revocation,
		corsOrigins: corsOrigins,
	}
}

// AuthMiddleware requires a valid token and stores user_id, principal and token
// in the request locals.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrUnauthorized)
		}
		if err := m.authenticate(c, jwtService, token); err != nil {
			return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedTokenInvalid, err)
		}
		return c.Next()
	}
}

// OptionalAuth lets anonymous requests through but still rejects a token
// that is present and bad.
func (m *middleware) OptionalAuth(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return c.Next()
		}
		if err := m.authenticate(c, jwtService, token); err != nil {
			return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedTokenInvalid, err)
		}
		return c.Next()
	}
}

func (m *middleware) OnlyAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, _ := c.Locals("principal").(*domain.Principal)
		if !principal.IsAdmin() {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MesaageUserNotAllowed, domain.ErrUserNotAllowed)
		}
		return c.Next()
	}
}

func (m *middleware) authenticate(c *fiber.Ctx, jwtService jwt.JWTService, token string) error {
	claims, err := jwtService.GetClaimsByToken(token)
	if err != nil {
		return err
	}

	revoked, err := m.revocation.IsTokenRevoked(c.UserContext(), claims.ID)
	if err != nil {
		return err
	}
	if revoked {
		return domain.ErrTokenRevoked
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("principal", &domain.Principal{UserID: claims.UserID, Role: claims.Role})
	c.Locals("token", token)
	return nil
}

// bearerToken accepts both "Token <t>" and "Bearer <t>".
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok {
		return ""
	}
	switch strings.ToLower(scheme) {
	case "token", "bearer":
		return strings.TrimSpace(token)
	default:
		return ""
	}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	origins := "*"
	if len(m.corsOrigins) > 0 {
		origins = strings.Join(m.corsOrigins, ",")
	}
	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: "Content-Disposition",
	})
}

// Prometheus records count and latency per matched route, so path
// parameters do not explode the label set.
func (m *middleware) Prometheus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = presenters.StatusFor(err)
		}
		metrics.RecordAPIRequest(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
