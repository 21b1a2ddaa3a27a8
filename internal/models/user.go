package models

import "time"

type User struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	GoogleUserID  string     `json:"google_user_id" gorm:"uniqueIndex;size:255"`
	Email         string     `json:"email" gorm:"uniqueIndex;size:320"`
	FullName      string     `json:"full_name" gorm:"size:255"`
	ProfilePicURL *string    `json:"profile_pic_url,omitempty"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type Session struct {
	ID     uint   `json:"-" gorm:"primaryKey"`
	Token  string `json:"token" gorm:"uniqueIndex"`
	UserID uint   `json:"user_id"`
}
