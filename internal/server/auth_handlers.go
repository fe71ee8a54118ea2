package server

import (
	"nextstep/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateToken handles POST /jwt
// Signs whatever claims the client posts into a long-lived bearer token.
// The only requirement is a non-empty email claim; there is no password
// step because identity is established by the upstream OAuth provider.
func (s *Server) CreateToken(c *fiber.Ctx) error {
	var claims map[string]any
	if err := c.BodyParser(&claims); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("email is required"))
	}

	token, err := s.tokens.Issue(claims)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"token": token})
}
