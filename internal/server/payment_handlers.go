package server

import (
	"nextstep/internal/models"
	"nextstep/internal/observability"
	"nextstep/internal/payments"

	"github.com/gofiber/fiber/v2"
)

// CreatePaymentIntent handles POST /create-payment-intent
// Converts the decimal fee to the smallest currency unit and returns the
// provider's client secret for the frontend to confirm.
func (s *Server) CreatePaymentIntent(c *fiber.Ctx) error {
	var req struct {
		Fee float64 `json:"fee"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Fee <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("fee must be greater than zero"))
	}

	secret, err := s.payments.CreateIntent(c.Context(), payments.AmountCents(req.Fee), payments.Currency)
	if err != nil {
		observability.PaymentIntentsTotal.WithLabelValues("error").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	observability.PaymentIntentsTotal.WithLabelValues("created").Inc()
	return c.JSON(fiber.Map{"clientSecret": secret})
}
