package api

import (
	"time"

	"github.com/tutorlog/tutorlog/internal/models"
)

type CreatePupilRequest struct {
	FullName    string    `json:"full_name" binding:"required"`
	Email       *string   `json:"email" binding:"omitempty,email"`
	Mobile      string    `json:"mobile" binding:"required,max=15"`
	FatherName  string    `json:"father_name"`
	MotherName  string    `json:"mother_name"`
	DateOfBirth time.Time `json:"date_of_birth" binding:"required"`
	Gender      string    `json:"gender" binding:"required,oneof=M F Other"`
	EnrolledOn  time.Time `json:"enrolled_on" binding:"required"`
	OwnerID     uint      `json:"owner_id" binding:"required"`
}

type UpdatePupilRequest struct {
	FullName    *string    `json:"full_name"`
	Email       *string    `json:"email" binding:"omitempty,email"`
	Mobile      *string    `json:"mobile" binding:"omitempty,max=15"`
	FatherName  *string    `json:"father_name"`
	MotherName  *string    `json:"mother_name"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *string    `json:"gender" binding:"omitempty,oneof=M F Other"`
	EnrolledOn  *time.Time `json:"enrolled_on"`
}

type PupilResponse struct {
	Status
	Pupil *models.Pupil `json:"pupil,omitempty"`
}

type PupilsResponse struct {
	Status
	Pupils []models.Pupil `json:"pupils,omitempty"`
}

type PupilCountResponse struct {
	Status
	TotalPupils int64 `json:"total_pupils"`
}
