package middleware

import (
	"fmt"
	"log"
	"strings"

	"recipeapi/internal/models"
	"recipeapi/internal/services"

	"github.com/gofiber/fiber/v2"
)

const (
	localUser   = "user"
	localUserID = "user_id"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token. The
// token must belong to an existing, active account, which is stored in the
// request locals for the handlers.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication credentials were not provided",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		userID, err := claimUserID(claims["user_id"])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		user, err := authService.GetAccount(userID)
		if err != nil || !user.IsActive {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "User not found or inactive",
			})
		}

		c.Locals(localUser, user)
		c.Locals(localUserID, user.ID)
		return c.Next()
	}
}

// claimUserID converts the user_id claim, which JSON decoding yields as a
// float64, back into an account id.
func claimUserID(v interface{}) (uint, error) {
	f, ok := v.(float64)
	if !ok || f <= 0 || f != float64(uint(f)) {
		return 0, fmt.Errorf("invalid user_id claim: %v", v)
	}
	return uint(f), nil
}

// CurrentUser returns the account stored by AuthRequired.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(localUser).(*models.User)
	return user, ok && user != nil
}

// CurrentUserID returns the id of the account stored by AuthRequired.
func CurrentUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(localUserID).(uint)
	return id, ok
}
