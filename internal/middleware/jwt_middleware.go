package middleware

import (
	"log"
	"strings"

	"github.com/rchoppari/EcomerceProj/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserIDKey is the Fiber locals key holding the authenticated account id.
const UserIDKey = "user_id"

// AuthRequired is a Fiber middleware to check for a valid bearer token.
func AuthRequired(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or missing token",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or missing token",
			})
		}

		tokenString := parts[1]
		if !tokens.Validate(tokenString) {
			log.Printf("Rejected bearer token for %s %s", c.Method(), c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid token",
			})
		}
		userID, err := tokens.UserID(tokenString)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid token",
			})
		}

		// Store the identity in Fiber context for subsequent handlers
		c.Locals(UserIDKey, userID)

		return c.Next()
	}
}

// UserID returns the account id stored by AuthRequired.
func UserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(UserIDKey).(string)
	return userID
}
