package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rectificadora-api/internal/application/dto"
)

// featureChecker es el contrato mínimo para saber si una integración opcional
// está configurada. Lo implementa *mail.Mailer.
type featureChecker interface {
	Enabled() bool
}

// RequireFeature corta con 503 cuando la integración no está configurada
// (por ejemplo SMTP sin host), antes de generar el PDF.
func RequireFeature(name string, checker featureChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if checker == nil || !checker.Enabled() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "FEATURE_DISABLED",
				Message: "la función '" + name + "' no está configurada en este servidor",
			})
		}
		return c.Next()
	}
}
