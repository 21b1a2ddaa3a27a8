package api

import "github.com/tutorlog/tutorlog/internal/models"

type CreateGroupRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
}

type UpdateGroupRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
}

type GroupResponse struct {
	Status
	Group *models.Group `json:"group,omitempty"`
}

type GroupsResponse struct {
	Status
	Groups []models.Group `json:"groups,omitempty"`
}

type GroupMembersRequest struct {
	PupilIDs []uint `json:"pupil_ids" binding:"required"`
}

type GroupMembersResponse struct {
	Status
	Members []models.GroupMember `json:"members,omitempty"`
}

type GroupMemberResponse struct {
	Status
	Member *models.GroupMember `json:"member,omitempty"`
}
