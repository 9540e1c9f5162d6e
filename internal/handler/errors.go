package handler

import (
	"errors"

	"crm-console/internal/crmapi"
	"crm-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service and CRM API failures onto the console's error
// body. CRM API messages are passed through verbatim.
func respondError(c *fiber.Ctx, err error) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		body := fiber.Map{"error": verr.Error()}
		if len(verr.Fields) > 0 {
			body["errors"] = verr.Fields
		}
		return c.Status(400).JSON(body)
	}

	var apiErr *crmapi.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status < 400 {
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(fiber.Map{"error": apiErr.Message})
	}

	if errors.Is(err, crmapi.ErrTransport) || errors.Is(err, crmapi.ErrMalformed) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(500).JSON(fiber.Map{"error": err.Error()})
}
