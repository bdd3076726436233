package api

import (
	"time"

	"github.com/mgcruz/rollcall/internal/db"
	"github.com/mgcruz/rollcall/internal/models"
	"github.com/mgcruz/rollcall/internal/services"
	"gorm.io/gorm"
)

const (
	authCookieName = "rollcall_token"
	authTokenTTL   = 7 * 24 * time.Hour

	contextUserKey = "current_user"
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	cookieSecure bool

	repositories *db.Repositories
	auth         *services.AuthService
	groups       *services.GroupService
	sessions     *services.SessionService
	memberships  *services.MembershipService
	checkins     *services.CheckinService
}

func NewHandler(database *gorm.DB, secretKey string, defaultOffset string, cookieSecure bool) *Handler {
	repositories := db.NewRepositories(database)
	if defaultOffset == "" {
		defaultOffset = models.DefaultTimezoneOffset
	}

	return &Handler{
		db:           database,
		secretKey:    []byte(secretKey),
		cookieSecure: cookieSecure,
		repositories: repositories,
		auth:         services.NewAuthService(repositories.Users, nil),
		groups:       services.NewGroupService(repositories.Groups, defaultOffset, nil),
		sessions:     services.NewSessionService(repositories.Sessions, nil),
		memberships:  services.NewMembershipService(repositories.Memberships, nil),
		checkins: services.NewCheckinService(
			repositories.Checkins,
			repositories.Memberships,
			repositories.Sessions,
			defaultOffset,
			nil,
		),
	}
}
