package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mgcruz/rollcall/internal/models"
	"github.com/mgcruz/rollcall/internal/services"
)

func (handler *Handler) RequestToJoin(c *fiber.Ctx) error {
	group, err := handler.loadGroup(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	input := struct {
		InvitedBy *string `json:"invited_by"`
	}{}
	// body is optional for a plain join request
	_ = c.BodyParser(&input)

	request, err := handler.memberships.RequestToJoin(group, currentUser(c), input.InvitedBy)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondData(c, fiber.StatusCreated, "join request successfully created", joinRequestView(*request))
}

func (handler *Handler) WithdrawJoinRequest(c *fiber.Ctx) error {
	group, err := handler.loadGroup(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	if err := handler.memberships.WithdrawJoinRequest(group, currentUser(c)); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "join request withdrawn"})
}

func (handler *Handler) ListJoinRequests(c *fiber.Ctx) error {
	group, err := handler.loadGroup(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	requests, err := handler.memberships.ListJoinRequests(group, currentUser(c))
	if err != nil {
		return respondDomainError(c, err)
	}

	views := make([]fiber.Map, 0, len(requests))
	for _, request := range requests {
		views = append(views, joinRequestView(request))
	}
	return respondData(c, fiber.StatusOK, "join requests", views)
}

func (handler *Handler) EvaluateJoinRequests(c *fiber.Ctx) error {
	group, err := handler.loadGroup(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	input := struct {
		UserIDs    []string          `json:"user_ids"`
		Evaluation models.Evaluation `json:"evaluation"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return respondDomainError(c, services.ValidationError("invalid request body"))
	}

	memberships, err := handler.memberships.EvaluateJoinRequests(group, currentUser(c), input.UserIDs, input.Evaluation)
	if err != nil {
		return respondDomainError(c, err)
	}
	if input.Evaluation == models.EvaluationApproved {
		return respondData(c, fiber.StatusOK, "join requests approved", memberships)
	}
	return c.JSON(fiber.Map{"message": "join requests evaluated"})
}

func (handler *Handler) ListMemberships(c *fiber.Ctx) error {
	group, err := handler.loadGroup(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	memberships, err := handler.memberships.ListMemberships(group, currentUser(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondData(c, fiber.StatusOK, "memberships", memberships)
}

func (handler *Handler) AddMembers(c *fiber.Ctx) error {
	group, err := handler.loadGroup(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	input := struct {
		UserIDs   []string `json:"user_ids"`
		InvitedBy *string  `json:"invited_by"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return respondDomainError(c, services.ValidationError("invalid request body"))
	}

	memberships, err := handler.memberships.AddMembersDirectly(group, currentUser(c), input.UserIDs, input.InvitedBy)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondData(c, fiber.StatusCreated, "members successfully added", memberships)
}
