package models

import "time"

// MemberCheckin is one attendance record. Date holds the local calendar date
// key ("YYYY-MM-DD") at the session's UTC offset, not a timestamp; the unique
// index makes a user's check-in per session per local day single-shot.
type MemberCheckin struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	GroupID     string     `gorm:"size:36;not null;index" json:"group_id"`
	UserID      string     `gorm:"size:36;not null;uniqueIndex:uidx_checkin_day" json:"user_id"`
	SessionID   string     `gorm:"size:36;not null;uniqueIndex:uidx_checkin_day" json:"session_id"`
	Date        string     `gorm:"size:10;not null;uniqueIndex:uidx_checkin_day" json:"date"`
	CreatedBy   string     `gorm:"size:36;not null" json:"created_by"`
	Confirmed   *bool      `json:"confirmed"`
	EvaluatedBy *string    `gorm:"size:36" json:"evaluated_by"`
	EvaluatedAt *time.Time `json:"evaluated_at"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
}

func (checkin MemberCheckin) Evaluation() Evaluation {
	return EvaluationFromConfirmed(checkin.Confirmed)
}
