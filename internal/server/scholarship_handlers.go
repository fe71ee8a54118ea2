package server

import (
	"time"

	"nextstep/internal/cache"
	"nextstep/internal/models"

	"github.com/gofiber/fiber/v2"
)

const scholarshipCacheTTL = 5 * time.Minute

// AddScholarship handles POST /add-scholarship
func (s *Server) AddScholarship(c *fiber.Ctx) error {
	var scholarship models.Scholarship
	if err := c.BodyParser(&scholarship); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	scholarship.ID = 0
	if scholarship.ScholarshipName == "" || scholarship.UniversityName == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("scholarshipName and universityName are required"))
	}
	if scholarship.PostedUserEmail == "" {
		scholarship.PostedUserEmail = userEmail(c)
	}

	if err := s.scholarshipRepo.Create(c.Context(), &scholarship); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	cache.InvalidateScholarships(c.Context())
	return c.Status(fiber.StatusCreated).JSON(scholarship)
}

// GetScholarships handles GET /scholarships?search=&page=&limit=
// The window is offset-based: limit records skipping page*limit.
func (s *Server) GetScholarships(c *fiber.Ctx) error {
	search := c.Query("search")
	page := c.QueryInt("page", 0)
	limit := c.QueryInt("limit", 10)
	if page < 0 {
		page = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	scholarships, err := s.scholarshipRepo.List(c.Context(), search, page, limit)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(scholarships)
}

// GetTopScholarships handles GET /top-scholarships
// Served cache-aside; at most six records, cheapest application fee first,
// most recent post first among equal fees.
func (s *Server) GetTopScholarships(c *fiber.Ctx) error {
	var scholarships []models.Scholarship
	err := cache.CacheAside(c.Context(), cache.KeyTopScholarships, &scholarships, scholarshipCacheTTL, func() error {
		var err error
		scholarships, err = s.scholarshipRepo.Top(c.Context())
		return err
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(scholarships)
}

// GetTotalScholarships handles GET /total-scholarships
func (s *Server) GetTotalScholarships(c *fiber.Ctx) error {
	var count int64
	err := cache.CacheAside(c.Context(), cache.KeyTotalScholarships, &count, scholarshipCacheTTL, func() error {
		var err error
		count, err = s.scholarshipRepo.Count(c.Context())
		return err
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// GetScholarshipAdminAccess handles GET /scholarship-admin-access
// Full unpaginated listing for the management dashboard.
func (s *Server) GetScholarshipAdminAccess(c *fiber.Ctx) error {
	scholarships, err := s.scholarshipRepo.ListAll(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(scholarships)
}

// GetScholarship handles GET /scholarship/:id. A miss returns null.
func (s *Server) GetScholarship(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	scholarship, err := s.scholarshipRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(scholarship)
}

// UpdateScholarship handles PUT /update-scholarship/:id
// Applies the listing-field whitelist; anything else in the payload is
// dropped.
func (s *Server) UpdateScholarship(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		ScholarshipName     *string  `json:"scholarshipName"`
		UniversityName      *string  `json:"universityName"`
		UniversityImage     *string  `json:"universityImage"`
		UniversityCountry   *string  `json:"universityCountry"`
		UniversityCity      *string  `json:"universityCity"`
		WorldRank           *int     `json:"universityWorldRank"`
		SubjectCategory     *string  `json:"subjectCategory"`
		ScholarshipCategory *string  `json:"scholarshipCategory"`
		Degree              *string  `json:"degree"`
		TuitionFees         *float64 `json:"tuitionFees"`
		ApplicationFees     *float64 `json:"applicationFees"`
		ServiceCharge       *float64 `json:"serviceCharge"`
		ApplicationDeadline *string  `json:"applicationDeadline"`
		Stipend             *string  `json:"stipend"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	fields := map[string]interface{}{}
	setIf(fields, "scholarship_name", req.ScholarshipName)
	setIf(fields, "university_name", req.UniversityName)
	setIf(fields, "university_image", req.UniversityImage)
	setIf(fields, "university_country", req.UniversityCountry)
	setIf(fields, "university_city", req.UniversityCity)
	setIf(fields, "world_rank", req.WorldRank)
	setIf(fields, "subject_category", req.SubjectCategory)
	setIf(fields, "scholarship_category", req.ScholarshipCategory)
	setIf(fields, "degree", req.Degree)
	setIf(fields, "tuition_fees", req.TuitionFees)
	setIf(fields, "application_fees", req.ApplicationFees)
	setIf(fields, "service_charge", req.ServiceCharge)
	setIf(fields, "application_deadline", req.ApplicationDeadline)
	setIf(fields, "stipend", req.Stipend)

	if err := s.scholarshipRepo.UpdateFields(c.Context(), id, fields); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	cache.InvalidateScholarships(c.Context())
	return c.JSON(fiber.Map{"message": "Scholarship updated"})
}

// DeleteScholarship handles DELETE /delete-scholarship/:id
// No cascade: applications and reviews referencing the listing stay put.
func (s *Server) DeleteScholarship(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.scholarshipRepo.Delete(c.Context(), id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	cache.InvalidateScholarships(c.Context())
	return c.JSON(fiber.Map{"message": "Scholarship deleted"})
}

// setIf adds column=value to fields when the parsed pointer is set.
func setIf[T any](fields map[string]interface{}, column string, v *T) {
	if v != nil {
		fields[column] = *v
	}
}
