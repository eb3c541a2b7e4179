package middleware

import (
	"katalog/internal/apperrors"
	"katalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminRequired is a Fiber middleware guarding mutating routes. It verifies
// the bearer credential and rejects any principal whose role claim is not
// "admin"; rejected requests never reach the handler or the store.
func AdminRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := authService.AuthorizeAdmin(c.Get("Authorization"))
		if err != nil {
			return c.Status(apperrors.StatusOf(err)).JSON(fiber.Map{
				"msg": apperrors.Message(err),
			})
		}

		// Expose the subject to downstream handlers.
		c.Locals("user_id", userID)
		return c.Next()
	}
}
