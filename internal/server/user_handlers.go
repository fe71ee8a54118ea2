package server

import (
	"nextstep/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SaveUser handles POST /save-user/:email
// Creation is idempotent: a repeated call for an existing email returns the
// stored record unchanged instead of erroring or duplicating.
func (s *Server) SaveUser(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	user.ID = 0
	user.Email = c.Params("email")
	if user.Email == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("email is required"))
	}

	saved, created, err := s.userRepo.SaveIfAbsent(c.Context(), &user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(saved)
}

// GetAllUsers handles GET /all-users/:email
// Lists every user except :email; the optional "sort" query parameter
// narrows the list to a single role.
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	users, err := s.userRepo.List(c.Context(), c.Params("email"), c.Query("sort"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(users)
}

// GetUserRole handles GET /user-role/:email
func (s *Server) GetUserRole(c *fiber.Ctx) error {
	user, err := s.userRepo.GetByEmail(c.Context(), c.Params("email"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	var role any
	if user != nil {
		role = user.Role
	}
	return c.JSON(fiber.Map{"role": role})
}

// GetUser handles GET /user/:email (public). A miss returns null, not 404.
func (s *Server) GetUser(c *fiber.Ctx) error {
	user, err := s.userRepo.GetByEmail(c.Context(), c.Params("email"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(user)
}

// UpdateUser handles PATCH /update-user/:email
// Only name and image are mutable here; a role key in the payload is
// ignored.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	var req struct {
		Name  string `json:"name"`
		Image string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.userRepo.UpdateProfile(c.Context(), c.Params("email"), req.Name, req.Image); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"message": "User updated"})
}

// UpdateRole handles PATCH /update-role/:email
func (s *Server) UpdateRole(c *fiber.Ctx) error {
	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Role == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("role is required"))
	}

	if err := s.userRepo.UpdateRole(c.Context(), c.Params("email"), req.Role); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"message": "Role updated"})
}

// DeleteUser handles DELETE /delete-user/:id
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userRepo.Delete(c.Context(), id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}
