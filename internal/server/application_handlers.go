package server

import (
	"nextstep/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateApplication handles POST /applied-scholarships
func (s *Server) CreateApplication(c *fiber.Ctx) error {
	var app models.Application
	if err := c.BodyParser(&app); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	app.ID = 0
	if app.ScholarshipID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("scholarshipId is required"))
	}
	if app.UserEmail == "" {
		app.UserEmail = userEmail(c)
	}
	// New applications always start Pending; status and feedback are
	// administrator-only fields.
	app.Status = models.StatusPending
	app.Feedback = ""

	if err := s.applicationRepo.Create(c.Context(), &app); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

// GetMyApplications handles GET /my-applications/:email
func (s *Server) GetMyApplications(c *fiber.Ctx) error {
	apps, err := s.applicationRepo.ListByEmail(c.Context(), c.Params("email"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(apps)
}

// GetAllApplications handles GET /applied-scholarships?date=applicationDeadline|appliedDate
func (s *Server) GetAllApplications(c *fiber.Ctx) error {
	apps, err := s.applicationRepo.ListAll(c.Context(), c.Query("date"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(apps)
}

// GetApplication handles GET /applied-scholarship/:id. A miss returns null.
func (s *Server) GetApplication(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	app, err := s.applicationRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(app)
}

// UpdateApplication handles PATCH /update-application/:id
// Applicant-editable fields only; status and feedback cannot be reached
// through this route.
func (s *Server) UpdateApplication(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Phone     *string `json:"phone"`
		Photo     *string `json:"photo"`
		Address   *string `json:"address"`
		Gender    *string `json:"gender"`
		Degree    *string `json:"degree"`
		SSCResult *string `json:"sscResult"`
		HSCResult *string `json:"hscResult"`
		StudyGap  *string `json:"studyGap"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	fields := map[string]interface{}{}
	setIf(fields, "phone", req.Phone)
	setIf(fields, "photo", req.Photo)
	setIf(fields, "address", req.Address)
	setIf(fields, "gender", req.Gender)
	setIf(fields, "degree", req.Degree)
	setIf(fields, "ssc_result", req.SSCResult)
	setIf(fields, "hsc_result", req.HSCResult)
	setIf(fields, "study_gap", req.StudyGap)

	if err := s.applicationRepo.UpdateFields(c.Context(), id, fields); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"message": "Application updated"})
}

// ChangeStatus handles PATCH /change-status/:id
func (s *Server) ChangeStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Status == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("status is required"))
	}

	if err := s.applicationRepo.UpdateStatus(c.Context(), id, req.Status); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"message": "Status updated"})
}

// DeleteApplication handles DELETE /delete-application/:id
func (s *Server) DeleteApplication(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.applicationRepo.Delete(c.Context(), id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"message": "Application deleted"})
}

// AddFeedback handles PATCH /add-feedback/:id
func (s *Server) AddFeedback(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Feedback string `json:"feedback"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.applicationRepo.SetFeedback(c.Context(), id, req.Feedback); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"message": "Feedback added"})
}
