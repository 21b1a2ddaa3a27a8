package models

import "time"

const (
	EventTypeOnce   = "once"
	EventTypeRepeat = "repeat"
)

type EventType = string

const (
	RepeatPatternDaily   = "daily"
	RepeatPatternWeekly  = "weekly"
	RepeatPatternMonthly = "monthly"
)

type RepeatPattern = string

type Event struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Title         string         `json:"title" gorm:"size:255"`
	Description   *string        `json:"description,omitempty"`
	EventType     EventType      `json:"event_type" gorm:"size:16;index"`
	StartTime     time.Time      `json:"start_time"`
	EndTime       time.Time      `json:"end_time"`
	RepeatPattern *RepeatPattern `json:"repeat_pattern,omitempty" gorm:"size:16"`
	RepeatUntil   *time.Time     `json:"repeat_until,omitempty"`
	OwnerID       uint           `json:"owner_id" gorm:"index"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// DayOfWeek follows time.Weekday: 0 is Sunday, 6 is Saturday.
type EventRepeatDay struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	EventID   uint `json:"event_id" gorm:"index"`
	DayOfWeek int  `json:"day_of_week"`
}

type EventPupil struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	EventID uint      `json:"event_id" gorm:"uniqueIndex:idx_event_pupil"`
	PupilID uint      `json:"pupil_id" gorm:"uniqueIndex:idx_event_pupil"`
	AddedAt time.Time `json:"added_at"`
}
