package api

import (
	"time"

	"github.com/tutorlog/tutorlog/internal/models"
)

type LoginRequest struct {
	GoogleUserID  string  `json:"google_user_id" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	FullName      string  `json:"full_name" binding:"required"`
	ProfilePicURL *string `json:"profile_pic_url"`
}

type LoginResponse struct {
	Status
	Token string       `json:"token,omitempty"`
	User  *models.User `json:"user,omitempty"`
}

type CreateUserRequest struct {
	GoogleUserID  string  `json:"google_user_id" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	FullName      string  `json:"full_name" binding:"required"`
	ProfilePicURL *string `json:"profile_pic_url"`
}

type UpdateUserRequest struct {
	FullName      *string    `json:"full_name"`
	ProfilePicURL *string    `json:"profile_pic_url"`
	LastLoginAt   *time.Time `json:"last_login_at"`
}

type UserResponse struct {
	Status
	User *models.User `json:"user,omitempty"`
}

type UsersResponse struct {
	Status
	Users []models.User `json:"users,omitempty"`
}
