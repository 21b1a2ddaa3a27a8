package models

import "time"

const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "Other"
)

type Gender = string

type Pupil struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FullName    string    `json:"full_name" gorm:"size:255;index"`
	Email       *string   `json:"email,omitempty" gorm:"uniqueIndex;size:320"`
	Mobile      string    `json:"mobile" gorm:"size:15"`
	FatherName  string    `json:"father_name" gorm:"size:255"`
	MotherName  string    `json:"mother_name" gorm:"size:255"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Gender      Gender    `json:"gender" gorm:"size:8"`
	EnrolledOn  time.Time `json:"enrolled_on"`
	OwnerID     uint      `json:"owner_id" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
