package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mgcruz/rollcall/internal/models"
)

func userView(user *models.User) fiber.Map {
	return fiber.Map{
		"id":             user.ID,
		"name":           user.Name,
		"email":          user.Email,
		"email_verified": user.EmailVerified,
		"created_at":     user.CreatedAt,
	}
}

func groupView(group *models.Group) fiber.Map {
	return fiber.Map{
		"id":                      group.ID,
		"name":                    group.Name,
		"slug":                    group.Slug,
		"owned_by":                group.OwnedBy,
		"default_timezone_offset": group.DefaultTimezoneOffset,
		"created_at":              group.CreatedAt,
	}
}

func checkinView(checkin models.MemberCheckin) fiber.Map {
	return fiber.Map{
		"id":           checkin.ID,
		"group_id":     checkin.GroupID,
		"user_id":      checkin.UserID,
		"session_id":   checkin.SessionID,
		"date":         checkin.Date,
		"created_by":   checkin.CreatedBy,
		"evaluation":   checkin.Evaluation(),
		"evaluated_by": checkin.EvaluatedBy,
		"evaluated_at": checkin.EvaluatedAt,
		"created_at":   checkin.CreatedAt,
	}
}

func checkinViews(checkins []models.MemberCheckin) []fiber.Map {
	views := make([]fiber.Map, 0, len(checkins))
	for _, checkin := range checkins {
		views = append(views, checkinView(checkin))
	}
	return views
}

func joinRequestView(request models.JoinRequest) fiber.Map {
	return fiber.Map{
		"group_id":     request.GroupID,
		"user_id":      request.UserID,
		"invited_by":   request.InvitedBy,
		"evaluation":   request.Evaluation(),
		"evaluated_by": request.EvaluatedBy,
		"evaluated_at": request.EvaluatedAt,
		"created_at":   request.CreatedAt,
	}
}

func parseOptionalInstant(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	instant, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &instant, nil
}
