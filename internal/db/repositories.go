package db

import "gorm.io/gorm"

type Repositories struct {
	Users       *UserRepository
	Groups      *GroupRepository
	Memberships *MembershipRepository
	Sessions    *SessionRepository
	Checkins    *CheckinRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		Groups:      NewGroupRepository(database),
		Memberships: NewMembershipRepository(database),
		Sessions:    NewSessionRepository(database),
		Checkins:    NewCheckinRepository(database),
	}
}
