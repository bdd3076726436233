package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	profile := api.Group("/profile", handler.AuthRequired)
	profile.Get("", handler.Profile)
	profile.Patch("/name", handler.UpdateName)
	profile.Patch("/password", handler.UpdatePassword)

	api.Get("/users/:email", handler.AuthRequired, handler.UserByEmail)

	groups := api.Group("/groups", handler.AuthRequired)
	groups.Post("", handler.CreateGroup)
	groups.Get("", handler.ListGroups)
	groups.Get("/slug/:slug", handler.GetGroupBySlug)

	group := groups.Group("/:groupId")
	group.Get("", handler.GetGroup)
	group.Patch("", handler.UpdateGroup)
	group.Delete("", handler.DeleteGroup)

	group.Get("/employments", handler.ListEmployments)
	group.Post("/employments", handler.AddStaff)
	group.Delete("/employments/:userId", handler.RemoveStaff)

	group.Get("/sessions", handler.ListSessions)
	group.Post("/sessions", handler.CreateSession)
	group.Patch("/sessions/:sessionId", handler.UpdateSession)

	group.Post("/join", handler.RequestToJoin)
	group.Delete("/join", handler.WithdrawJoinRequest)
	group.Get("/join-requests", handler.ListJoinRequests)
	group.Patch("/join-requests", handler.EvaluateJoinRequests)

	group.Get("/memberships", handler.ListMemberships)
	group.Post("/memberships", handler.AddMembers)

	group.Get("/member-checkins", handler.ListCheckins)
	group.Post("/member-checkins", handler.RecordCheckins)
	group.Patch("/member-checkins", handler.EvaluateCheckins)
}
