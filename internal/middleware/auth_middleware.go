package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shadtorh/jobconnect/internal/config"
)

const identityKey = "identity"

// Identity is the authenticated caller extracted from the bearer token.
// Token issuance happens elsewhere; this service only verifies.
type Identity struct {
	UserID    uint
	FirstName string
	Role      string
}

// Authenticate verifies the Authorization bearer token and stores the caller
// identity in the request locals.
func Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Authentication required",
			})
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return []byte(config.LoadAuthConfig().JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Invalid or expired token",
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorized",
			})
		}

		userID, _ := claims["userId"].(float64)
		firstName, _ := claims["first_name"].(string)
		role, _ := claims["role"].(string)
		if userID <= 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorized",
			})
		}

		c.Locals(identityKey, Identity{
			UserID:    uint(userID),
			FirstName: firstName,
			Role:      role,
		})
		return c.Next()
	}
}

// IdentityFromCtx returns the identity stored by Authenticate.
func IdentityFromCtx(c *fiber.Ctx) (Identity, bool) {
	id, ok := c.Locals(identityKey).(Identity)
	return id, ok
}

// SetIdentity injects an identity directly; used by tests to bypass token
// verification.
func SetIdentity(c *fiber.Ctx, id Identity) {
	c.Locals(identityKey, id)
}
