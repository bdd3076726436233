package models

import "time"

// GroupSession is a recurring weekly schedule slot. The same name may recur on
// several days as distinct rows; the composite unique index keeps one row per
// exact slot.
type GroupSession struct {
	ID             string     `gorm:"primaryKey;size:36" json:"id"`
	GroupID        string     `gorm:"size:36;not null;uniqueIndex:uidx_session_slot" json:"group_id"`
	Name           string     `gorm:"size:64;not null;uniqueIndex:uidx_session_slot" json:"name"`
	Day            int        `gorm:"not null;uniqueIndex:uidx_session_slot" json:"day"`
	StartAt        string     `gorm:"size:8;not null;uniqueIndex:uidx_session_slot" json:"start_at"`
	EndAt          string     `gorm:"size:8;not null;uniqueIndex:uidx_session_slot" json:"end_at"`
	TimezoneOffset string     `gorm:"size:6;not null;uniqueIndex:uidx_session_slot" json:"timezone_offset"`
	Active         bool       `gorm:"not null;default:true" json:"active"`
	CreatedBy      string     `gorm:"size:36;not null" json:"created_by"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
	LastEditedAt   *time.Time `json:"last_edited_at"`
}
