package api

import (
	"time"

	"github.com/tutorlog/tutorlog/internal/models"
	"github.com/tutorlog/tutorlog/internal/schedule"
)

type CreateEventRequest struct {
	Title         string     `json:"title" binding:"required,max=255"`
	Description   *string    `json:"description"`
	EventType     string     `json:"event_type" binding:"required,oneof=once repeat"`
	StartTime     time.Time  `json:"start_time" binding:"required"`
	EndTime       time.Time  `json:"end_time" binding:"required"`
	RepeatPattern *string    `json:"repeat_pattern" binding:"omitempty,oneof=daily weekly monthly"`
	RepeatUntil   *time.Time `json:"repeat_until"`
	RepeatDays    []int      `json:"repeat_days" binding:"omitempty,dive,min=0,max=6"`
}

type UpdateEventRequest struct {
	Title         *string    `json:"title" binding:"omitempty,max=255"`
	Description   *string    `json:"description"`
	EventType     *string    `json:"event_type" binding:"omitempty,oneof=once repeat"`
	StartTime     *time.Time `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	RepeatPattern *string    `json:"repeat_pattern" binding:"omitempty,oneof=daily weekly monthly"`
	RepeatUntil   *time.Time `json:"repeat_until"`
	RepeatDays    *[]int     `json:"repeat_days" binding:"omitempty,dive,min=0,max=6"`
}

type EventResponse struct {
	Status
	Event *models.Event `json:"event,omitempty"`
}

type EventsResponse struct {
	Status
	Events []models.Event `json:"events,omitempty"`
}

type CalendarResponse struct {
	Status
	Instances []schedule.Instance `json:"instances,omitempty"`
}

type RepeatDaysRequest struct {
	Days []int `json:"days" binding:"required,min=1,dive,min=0,max=6"`
}

type RepeatDayIDsRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

type RepeatDaysResponse struct {
	Status
	Days []models.EventRepeatDay `json:"days,omitempty"`
}

type EventPupilsRequest struct {
	PupilIDs []uint `json:"pupil_ids" binding:"required"`
}

type EventPupilsResponse struct {
	Status
	Pupils []models.EventPupil `json:"pupils,omitempty"`
}
