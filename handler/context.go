package handler

import "github.com/gofiber/fiber/v2"

// LocalUserID is where middleware.ExtractUserID stores the caller.
const LocalUserID = "user_id"

func currentUserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals(LocalUserID).(string)
	if !ok || userID == "" {
		return "", fiber.ErrUnauthorized
	}
	return userID, nil
}
