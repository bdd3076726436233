package models

import "time"

const (
	RoleOwner = "owner"
	RoleStaff = "staff"
)

const DefaultTimezoneOffset = "+00:00"

type Group struct {
	ID                    string    `gorm:"primaryKey;size:36" json:"id"`
	Name                  string    `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Slug                  string    `gorm:"size:80;uniqueIndex;not null" json:"slug"`
	OwnedBy               string    `gorm:"size:36;not null;index" json:"owned_by"`
	DefaultTimezoneOffset string    `gorm:"size:6;not null;default:'+00:00'" json:"default_timezone_offset"`
	CreatedAt             time.Time `gorm:"not null" json:"created_at"`

	// Relations are loaded filtered to a single acting user when the group is
	// fetched as an authorization aggregate.
	Employments  []Employment   `gorm:"foreignKey:GroupID" json:"-"`
	Memberships  []Membership   `gorm:"foreignKey:GroupID" json:"-"`
	JoinRequests []JoinRequest  `gorm:"foreignKey:GroupID" json:"-"`
	Sessions     []GroupSession `gorm:"foreignKey:GroupID" json:"-"`
}

type Employment struct {
	GroupID   string    `gorm:"primaryKey;size:36" json:"group_id"`
	UserID    string    `gorm:"primaryKey;size:36" json:"user_id"`
	Role      string    `gorm:"size:16;not null;default:staff" json:"role"`
	CreatedBy string    `gorm:"size:36;not null" json:"created_by"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

type Membership struct {
	GroupID   string    `gorm:"primaryKey;size:36" json:"group_id"`
	UserID    string    `gorm:"primaryKey;size:36" json:"user_id"`
	CreatedBy string    `gorm:"size:36;not null" json:"created_by"`
	InvitedBy *string   `gorm:"size:36" json:"invited_by"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

type JoinRequest struct {
	GroupID     string     `gorm:"primaryKey;size:36" json:"group_id"`
	UserID      string     `gorm:"primaryKey;size:36" json:"user_id"`
	InvitedBy   *string    `gorm:"size:36" json:"invited_by"`
	Confirmed   *bool      `json:"confirmed"`
	EvaluatedBy *string    `gorm:"size:36" json:"evaluated_by"`
	EvaluatedAt *time.Time `json:"evaluated_at"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
}

func (request JoinRequest) Evaluation() Evaluation {
	return EvaluationFromConfirmed(request.Confirmed)
}
