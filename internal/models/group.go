package models

import "time"

type Group struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:255"`
	Description *string   `json:"description,omitempty"`
	OwnerID     uint      `json:"owner_id" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
}

type GroupMember struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	GroupID  uint      `json:"group_id" gorm:"uniqueIndex:idx_group_member"`
	PupilID  uint      `json:"pupil_id" gorm:"uniqueIndex:idx_group_member"`
	JoinedAt time.Time `json:"joined_at"`
}
