package middleware

import (
	"strings"

	"courseapi/identity"

	"github.com/gofiber/fiber/v2"
)

// RequireIdentity verifies the bearer token on every request and stores the
// resolved identity in the request context. Header-shape problems are
// rejected before any call to the identity service.
func RequireIdentity(verifier *identity.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, "Missing or invalid Authorization header")
		}

		// The token should be prefixed with "Bearer "
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid Authorization header format")
		}

		tokenString := authHeader[len("Bearer "):]

		ident, err := verifier.Verify(c.Context(), tokenString)
		if err != nil {
			return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		c.Locals("identity", ident)
		return c.Next()
	}
}
