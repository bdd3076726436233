package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mgcruz/rollcall/internal/models"
	"github.com/mgcruz/rollcall/internal/services"
)

// loadGroup fetches the group aggregate for the authenticated user, with the
// user's own employment/membership rows preloaded for authorization.
func (handler *Handler) loadGroup(c *fiber.Ctx) (*models.Group, error) {
	return handler.groups.FindForUser(c.Params("groupId"), currentUser(c).ID)
}

func (handler *Handler) CreateGroup(c *fiber.Ctx) error {
	input := struct {
		Name                  string `json:"name"`
		DefaultTimezoneOffset string `json:"default_timezone_offset"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return respondDomainError(c, services.ValidationError("invalid request body"))
	}

	group, err := handler.groups.CreateGroup(currentUser(c), services.CreateGroupInput{
		Name:                  input.Name,
		DefaultTimezoneOffset: input.DefaultTimezoneOffset,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondData(c, fiber.StatusCreated, "group successfully created", groupView(group))
}

func (handler *Handler) ListGroups(c *fiber.Ctx) error {
	groups, err := handler.groups.ListForUser(currentUser(c))
	if err != nil {
		return respondDomainError(c, err)
	}

	views := make([]fiber.Map, 0, len(groups))
	for index := range groups {
		views = append(views, groupView(&groups[index]))
	}
	return respondData(c, fiber.StatusOK, "groups", views)
}

func (handler *Handler) GetGroup(c *fiber.Ctx) error {
	group, err := handler.loadGroup(c)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondData(c, fiber.StatusOK, "group", groupView(group))
}

func (handler *Handler) GetGroupBySlug(c *fiber.Ctx) error {
	group, err := handler.groups.FindBySlugForUser(c.Params("slug"), currentUser(c).ID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondData(c, fiber.StatusOK, "group", groupView(group))
}

func (handler *Handler) UpdateGroup(c *fiber.Ctx) error {
	group, err := handler.loadGroup(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	input := struct {
		Name                  *string `json:"name"`
		DefaultTimezoneOffset *string `json:"default_timezone_offset"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return respondDomainError(c, services.ValidationError("invalid request body"))
	}

	if err := handler.groups.UpdateGroup(group, currentUser(c), services.UpdateGroupInput{
		Name:                  input.Name,
		DefaultTimezoneOffset: input.DefaultTimezoneOffset,
	}); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "group updated"})
}

func (handler *Handler) DeleteGroup(c *fiber.Ctx) error {
	group, err := handler.loadGroup(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	if err := handler.groups.DeleteGroup(group, currentUser(c)); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "group deleted"})
}

func (handler *Handler) ListEmployments(c *fiber.Ctx) error {
	group, err := handler.loadGroup(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	employments, err := handler.groups.ListEmployments(group, currentUser(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondData(c, fiber.StatusOK, "employments", employments)
}

func (handler *Handler) AddStaff(c *fiber.Ctx) error {
	group, err := handler.loadGroup(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	input := struct {
		UserIDs []string `json:"user_ids"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return respondDomainError(c, services.ValidationError("invalid request body"))
	}

	created, err := handler.groups.AddStaff(group, currentUser(c), input.UserIDs)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondData(c, fiber.StatusCreated, "staff successfully added", created)
}

func (handler *Handler) RemoveStaff(c *fiber.Ctx) error {
	group, err := handler.loadGroup(c)
	if err != nil {
		return respondDomainError(c, err)
	}

	if err := handler.groups.RemoveStaff(group, currentUser(c), c.Params("userId")); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "staff removed"})
}
