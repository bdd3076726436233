package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mgcruz/rollcall/internal/services"
)

type credentialsInput struct {
	Name     *string `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return respondDomainError(c, services.ValidationError("invalid request body"))
	}

	user, err := handler.auth.Register(services.RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return respondDomainError(c, err)
	}

	if err := handler.setAuthCookie(c, user); err != nil {
		return respondDomainError(c, services.TransactionError("create session", err))
	}
	return respondData(c, fiber.StatusCreated, "account successfully created", userView(user))
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return respondDomainError(c, services.ValidationError("invalid request body"))
	}

	user, err := handler.auth.Login(input.Email, input.Password)
	if err != nil {
		return respondDomainError(c, err)
	}

	if err := handler.setAuthCookie(c, user); err != nil {
		return respondDomainError(c, services.TransactionError("create session", err))
	}
	return respondData(c, fiber.StatusOK, "login successful", userView(user))
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"message": "logged out"})
}

func (handler *Handler) Profile(c *fiber.Ctx) error {
	return respondData(c, fiber.StatusOK, "profile", userView(currentUser(c)))
}

func (handler *Handler) UpdateName(c *fiber.Ctx) error {
	input := struct {
		Name string `json:"name"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return respondDomainError(c, services.ValidationError("invalid request body"))
	}

	if err := handler.auth.UpdateName(currentUser(c), input.Name); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "name updated"})
}

func (handler *Handler) UpdatePassword(c *fiber.Ctx) error {
	input := struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return respondDomainError(c, services.ValidationError("invalid request body"))
	}

	if err := handler.auth.UpdatePassword(currentUser(c), input.CurrentPassword, input.NewPassword); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "password updated"})
}

// UserByEmail resolves an account by email, used by managers to look up users
// before adding them as staff or members.
func (handler *Handler) UserByEmail(c *fiber.Ctx) error {
	user, err := handler.auth.FindByEmail(c.Params("email"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondData(c, fiber.StatusOK, "account found", userView(user))
}
