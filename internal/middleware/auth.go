// Package middleware provides authentication, logging, rate-limit, and
// tracing middleware for the application.
package middleware

import (
	"strings"

	"nextstep/internal/auth"
	"nextstep/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// LocalsUserEmail is the Fiber locals key carrying the verified identity.
const LocalsUserEmail = "userEmail"

var tokens *auth.TokenService

// InitMiddleware initializes authentication middleware with the given token service.
func InitMiddleware(ts *auth.TokenService) {
	tokens = ts
}

// unauthorized is the uniform rejection for every authentication failure.
// No detail about the cause is leaked to the client.
func unauthorized(c *fiber.Ctx) error {
	observability.AuthFailuresTotal.Inc()
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Unauthorized User",
	})
}

// AuthRequired enforces bearer-token authentication for protected routes.
// It establishes identity only; no role is checked here or downstream.
func AuthRequired(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return unauthorized(c)
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return unauthorized(c)
	}

	claims, err := tokens.Verify(parts[1])
	if err != nil {
		return unauthorized(c)
	}

	email, ok := auth.Email(claims)
	if !ok {
		return unauthorized(c)
	}

	c.Locals(LocalsUserEmail, email)
	return c.Next()
}
