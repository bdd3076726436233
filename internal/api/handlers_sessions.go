package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mgcruz/rollcall/internal/services"
)

func (handler *Handler) CreateSession(c *fiber.Ctx) error {
	group, err := handler.loadGroup(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	input := struct {
		Name           string `json:"name"`
		Day            int    `json:"day"`
		StartAt        string `json:"start_at"`
		EndAt          string `json:"end_at"`
		TimezoneOffset string `json:"timezone_offset"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return respondDomainError(c, services.ValidationError("invalid request body"))
	}

	session, err := handler.sessions.CreateSession(group, currentUser(c), services.CreateSessionInput{
		Name:           input.Name,
		Day:            input.Day,
		StartAt:        input.StartAt,
		EndAt:          input.EndAt,
		TimezoneOffset: input.TimezoneOffset,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondData(c, fiber.StatusCreated, "group session successfully created", session)
}

func (handler *Handler) ListSessions(c *fiber.Ctx) error {
	group, err := handler.loadGroup(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	activeOnly := c.QueryBool("active", false)
	sessions, err := handler.sessions.ListSessions(group, currentUser(c), activeOnly)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondData(c, fiber.StatusOK, "group sessions", sessions)
}

func (handler *Handler) UpdateSession(c *fiber.Ctx) error {
	group, err := handler.loadGroup(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	input := struct {
		Name           *string `json:"name"`
		Day            *int    `json:"day"`
		StartAt        *string `json:"start_at"`
		EndAt          *string `json:"end_at"`
		TimezoneOffset *string `json:"timezone_offset"`
		Active         *bool   `json:"active"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return respondDomainError(c, services.ValidationError("invalid request body"))
	}

	if err := handler.sessions.UpdateSession(group, currentUser(c), c.Params("sessionId"), services.UpdateSessionInput{
		Name:           input.Name,
		Day:            input.Day,
		StartAt:        input.StartAt,
		EndAt:          input.EndAt,
		TimezoneOffset: input.TimezoneOffset,
		Active:         input.Active,
	}); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "group session updated"})
}
