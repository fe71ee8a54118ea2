package server

import (
	"strconv"

	"nextstep/internal/middleware"
	"nextstep/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID parses a numeric path parameter and writes a 400 response on
// failure. When err is non-nil the response is already committed and the
// handler should return nil.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, err
	}
	return uint(id), nil
}

// userEmail returns the verified identity attached by the auth middleware.
func userEmail(c *fiber.Ctx) string {
	if email, ok := c.Locals(middleware.LocalsUserEmail).(string); ok {
		return email
	}
	return ""
}
