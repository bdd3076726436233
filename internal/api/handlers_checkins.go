package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/mgcruz/rollcall/internal/models"
	"github.com/mgcruz/rollcall/internal/services"
)

func (handler *Handler) RecordCheckins(c *fiber.Ctx) error {
	group, err := handler.loadGroup(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	input := struct {
		SessionID string   `json:"session_id"`
		UserIDs   []string `json:"user_ids"`
		CreatedAt string   `json:"created_at"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return respondDomainError(c, services.ValidationError("invalid request body"))
	}

	createdAt, err := parseOptionalInstant(input.CreatedAt)
	if err != nil {
		return respondDomainError(c, services.ValidationError("created_at must be an RFC 3339 timestamp"))
	}

	inserted, err := handler.checkins.RecordCheckins(group, currentUser(c), services.RecordCheckinsInput{
		SessionID: input.SessionID,
		UserIDs:   input.UserIDs,
		CreatedAt: createdAt,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	if len(inserted) == 0 {
		return respondEmpty(c, "no member check-ins created; check-ins already exist for the session and date")
	}
	return respondData(c, fiber.StatusCreated, "member check-ins successfully created", checkinViews(inserted))
}

func (handler *Handler) ListCheckins(c *fiber.Ctx) error {
	group, err := handler.loadGroup(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	var sessionIDs []string
	if raw := c.Query("session_ids"); raw != "" {
		sessionIDs = strings.Split(raw, ",")
	}
	descending := strings.EqualFold(c.Query("order", "desc"), "desc")

	checkins, err := handler.checkins.ListCheckins(
		group,
		currentUser(c),
		c.Query("beg_date"),
		c.Query("end_date"),
		sessionIDs,
		descending,
	)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondData(c, fiber.StatusOK, "member check-ins", checkinViews(checkins))
}

func (handler *Handler) EvaluateCheckins(c *fiber.Ctx) error {
	group, err := handler.loadGroup(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	input := struct {
		CheckinIDs []uint            `json:"checkin_ids"`
		Evaluation models.Evaluation `json:"evaluation"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return respondDomainError(c, services.ValidationError("invalid request body"))
	}

	updated, err := handler.checkins.EvaluateCheckins(group, currentUser(c), input.CheckinIDs, input.Evaluation)
	if err != nil {
		return respondDomainError(c, err)
	}
	if updated == 0 {
		return respondEmpty(c, "no member check-ins updated")
	}
	return respondData(c, fiber.StatusOK, "member check-ins evaluated", fiber.Map{"updated": updated})
}
