package server

import (
	"nextstep/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddReview handles POST /add-review/:id where :id is the scholarship.
// One review per (reviewer, scholarship) pair; a second attempt gets a 400.
func (s *Server) AddReview(c *fiber.Ctx) error {
	var review models.Review
	if err := c.BodyParser(&review); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	review.ID = 0
	review.ScholarshipID = c.Params("id")
	if review.ReviewerEmail == "" {
		review.ReviewerEmail = userEmail(c)
	}

	exists, err := s.reviewRepo.ExistsFor(c.Context(), review.ScholarshipID, review.ReviewerEmail)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if exists {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Review Already Given!",
		})
	}

	if err := s.reviewRepo.Create(c.Context(), &review); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetReviews handles GET /reviews
func (s *Server) GetReviews(c *fiber.Ctx) error {
	reviews, err := s.reviewRepo.ListAll(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(reviews)
}

// GetMyReviews handles GET /my-reviews/:email
func (s *Server) GetMyReviews(c *fiber.Ctx) error {
	reviews, err := s.reviewRepo.ListByReviewer(c.Context(), c.Params("email"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(reviews)
}

// GetScholarshipReviews handles GET /reviews/:id where :id is the scholarship.
func (s *Server) GetScholarshipReviews(c *fiber.Ctx) error {
	reviews, err := s.reviewRepo.ListByScholarship(c.Context(), c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(reviews)
}

// GetMyReview handles GET /my-review/:id. A miss returns null.
func (s *Server) GetMyReview(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	review, err := s.reviewRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(review)
}

// UpdateReview handles PATCH /update-review/:id
// Rating, comment, and review date only.
func (s *Server) UpdateReview(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Rating     *float64 `json:"rating"`
		Comment    *string  `json:"comment"`
		ReviewDate *string  `json:"reviewDate"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	fields := map[string]interface{}{}
	setIf(fields, "rating", req.Rating)
	setIf(fields, "comment", req.Comment)
	setIf(fields, "review_date", req.ReviewDate)

	if err := s.reviewRepo.UpdateFields(c.Context(), id, fields); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"message": "Review updated"})
}

// DeleteReview handles DELETE /delete-review/:id
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.reviewRepo.Delete(c.Context(), id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"message": "Review deleted"})
}
