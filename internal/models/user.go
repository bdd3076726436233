package models

import "time"

type User struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	Name          *string    `gorm:"size:64" json:"name"`
	Email         string     `gorm:"size:128;uniqueIndex;not null" json:"email"`
	PasswordHash  *string    `gorm:"size:256" json:"-"`
	EmailVerified *time.Time `json:"email_verified"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
}
