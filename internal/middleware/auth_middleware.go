package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/recipebook-backend/internal/models"
	jwtPkg "github.com/sefazor/recipebook-backend/pkg/jwt"
)

// AuthRequired rejects requests without a valid bearer token and stores
// the principal's identity in locals.
func AuthRequired(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := claimsFromHeader(c, secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse(err.Error()))
		}

		setPrincipal(c, claims)
		return c.Next()
	}
}

// AuthOptional resolves the principal when a valid token is present and
// lets anonymous requests through. Read-open endpoints use it so that
// viewer-relative fields (is_favorited, is_subscribed, flag filters)
// can still be computed for authenticated callers.
func AuthOptional(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claims, err := claimsFromHeader(c, secret); err == nil {
			setPrincipal(c, claims)
		}
		return c.Next()
	}
}

func claimsFromHeader(c *fiber.Ctx, secret []byte) (*jwtPkg.Claims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "authorization header is required")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header format")
	}

	claims, err := jwtPkg.ValidateToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}
	return claims, nil
}

func setPrincipal(c *fiber.Ctx, claims *jwtPkg.Claims) {
	c.Locals("userID", claims.UserID)
	c.Locals("userEmail", claims.Email)
	c.Locals("isAdmin", claims.IsAdmin)
	c.Locals("authenticated", true)
}
