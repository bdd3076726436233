package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/mgcruz/rollcall/internal/services"
)

// respondDomainError maps a domain error kind to an HTTP status. Store-level
// causes are logged, never leaked into the response body.
func respondDomainError(c *fiber.Ctx, err error) error {
	domainError := services.AsDomainError(err, c.Route().Path)

	status := fiber.StatusInternalServerError
	switch domainError.Kind {
	case services.KindValidation:
		status = fiber.StatusBadRequest
	case services.KindAuthentication:
		status = fiber.StatusUnauthorized
	case services.KindAuthorization:
		status = fiber.StatusForbidden
	case services.KindNotFound:
		status = fiber.StatusNotFound
	case services.KindConflict:
		status = fiber.StatusConflict
	case services.KindTransaction:
		log.Printf("%s %s: %v", c.Method(), c.Path(), domainError)
	}

	message := domainError.Message
	if status == fiber.StatusInternalServerError {
		message = "internal error"
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func respondData(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(fiber.Map{"message": message, "data": data})
}

// respondEmpty reports a "nothing to do" outcome: the request was valid but
// produced no new rows (e.g. everything already existed).
func respondEmpty(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": message, "data": []any{}})
}
