package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/tutorlog/tutorlog/api"
	lf "github.com/tutorlog/tutorlog/internal/logfield"
	"github.com/tutorlog/tutorlog/internal/models"
)

type groupService struct {
	webService
}

func setupGroupService(server *server, r *gin.Engine) {
	s := groupService{webService{server, server.config, server.logger}}

	g := r.Group("/api/group")
	g.POST("", s.create)
	g.GET("", s.list)
	g.GET("/search", s.search)
	g.GET("/slug/:slug", s.getBySlug)
	g.GET("/:id", s.get)
	g.PUT("/:id", s.update)
	g.DELETE("/:id", s.delete)

	g.GET("/:id/members", s.listMembers)
	g.POST("/:id/members", s.addMembers)
	g.PUT("/:id/members", s.reconcileMembers)
	g.GET("/:id/members/:pupilID", s.getMember)
	g.DELETE("/:id/members/:pupilID", s.removeMember)
}

// ownedGroup loads the group and checks the acting user owns it.
func (s groupService) ownedGroup(c *gin.Context) (*models.Group, bool) {
	user, err := currentUserID(c)
	if err != nil {
		s.badRequest(c, err)
		return nil, false
	}
	id, err := parseID(c, "id")
	if err != nil {
		s.badRequest(c, err)
		return nil, false
	}

	group, err := s.server.db.FindGroupByID(id)
	if err != nil {
		s.replyError(c, err, lf.GroupID(id))
		return nil, false
	}
	if group.OwnerID != user {
		s.forbidden(c, "not authorized to access this group")
		return nil, false
	}
	return group, true
}

func (s groupService) create(c *gin.Context) {
	user, err := currentUserID(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}

	req := api.CreateGroupRequest{}
	if err = c.BindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	group, err := s.server.db.AddGroup(&models.Group{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     user,
	})
	if err != nil {
		s.replyError(c, err, lf.UserID(user))
		return
	}

	s.log.Info("Created group", lf.GroupID(group.ID), lf.UserID(user))
	c.JSON(http.StatusCreated, &api.GroupResponse{Status: api.StatusOk(), Group: group})
}

func (s groupService) list(c *gin.Context) {
	user, err := currentUserID(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}
	skip, limit, err := parsePagination(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}

	groups, err := s.server.db.ListGroups(user, skip, limit)
	if err != nil {
		s.replyError(c, err, lf.UserID(user))
		return
	}

	c.JSON(http.StatusOK, &api.GroupsResponse{Status: api.StatusOk(), Groups: groups})
}

func (s groupService) search(c *gin.Context) {
	user, err := currentUserID(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}
	name := c.Query("name")
	if name == "" {
		s.badRequest(c, errors.New("name query parameter is required"))
		return
	}

	groups, err := s.server.db.SearchGroupsByName(user, name)
	if err != nil {
		s.replyError(c, err, lf.UserID(user))
		return
	}

	c.JSON(http.StatusOK, &api.GroupsResponse{Status: api.StatusOk(), Groups: groups})
}

func (s groupService) getBySlug(c *gin.Context) {
	user, err := currentUserID(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}

	group, err := s.server.db.FindGroupBySlug(c.Param("slug"))
	if err != nil {
		s.replyError(c, err)
		return
	}
	if group.OwnerID != user {
		s.forbidden(c, "not authorized to access this group")
		return
	}

	c.JSON(http.StatusOK, &api.GroupResponse{Status: api.StatusOk(), Group: group})
}

func (s groupService) get(c *gin.Context) {
	group, ok := s.ownedGroup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, &api.GroupResponse{Status: api.StatusOk(), Group: group})
}

func (s groupService) update(c *gin.Context) {
	group, ok := s.ownedGroup(c)
	if !ok {
		return
	}

	req := api.UpdateGroupRequest{}
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, &api.GroupResponse{Status: api.StatusOk(), Group: group})
		return
	}

	updated, err := s.server.db.UpdateGroup(group.ID, updates)
	if err != nil {
		s.replyError(c, err, lf.GroupID(group.ID))
		return
	}

	c.JSON(http.StatusOK, &api.GroupResponse{Status: api.StatusOk(), Group: updated})
}

func (s groupService) delete(c *gin.Context) {
	group, ok := s.ownedGroup(c)
	if !ok {
		return
	}

	if err := s.server.db.DeleteGroup(group.ID); err != nil {
		s.replyError(c, err, lf.GroupID(group.ID))
		return
	}

	c.Status(http.StatusNoContent)
}

func (s groupService) listMembers(c *gin.Context) {
	group, ok := s.ownedGroup(c)
	if !ok {
		return
	}

	members, err := s.server.db.ListGroupMembers(group.ID)
	if err != nil {
		s.replyError(c, err, lf.GroupID(group.ID))
		return
	}

	c.JSON(http.StatusOK, &api.GroupMembersResponse{Status: api.StatusOk(), Members: members})
}

func (s groupService) addMembers(c *gin.Context) {
	group, ok := s.ownedGroup(c)
	if !ok {
		return
	}

	req := api.GroupMembersRequest{}
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	if len(req.PupilIDs) == 0 {
		s.badRequest(c, errors.New("pupil_ids must not be empty"))
		return
	}

	members, err := s.server.db.AddGroupMembers(group.ID, req.PupilIDs)
	if err != nil {
		s.replyError(c, err, lf.GroupID(group.ID))
		return
	}

	c.JSON(http.StatusCreated, &api.GroupMembersResponse{Status: api.StatusOk(), Members: members})
}

func (s groupService) reconcileMembers(c *gin.Context) {
	group, ok := s.ownedGroup(c)
	if !ok {
		return
	}

	req := api.GroupMembersRequest{}
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	members, err := s.server.db.ReconcileGroupMembers(group.ID, req.PupilIDs)
	if err != nil {
		s.replyError(c, err, lf.GroupID(group.ID))
		return
	}

	c.JSON(http.StatusOK, &api.GroupMembersResponse{Status: api.StatusOk(), Members: members})
}

func (s groupService) getMember(c *gin.Context) {
	group, ok := s.ownedGroup(c)
	if !ok {
		return
	}
	pupilID, err := parseID(c, "pupilID")
	if err != nil {
		s.badRequest(c, err)
		return
	}

	member, err := s.server.db.FindGroupMember(group.ID, pupilID)
	if err != nil {
		s.replyError(c, err, lf.GroupID(group.ID), lf.PupilID(pupilID))
		return
	}

	c.JSON(http.StatusOK, &api.GroupMemberResponse{Status: api.StatusOk(), Member: member})
}

func (s groupService) removeMember(c *gin.Context) {
	group, ok := s.ownedGroup(c)
	if !ok {
		return
	}
	pupilID, err := parseID(c, "pupilID")
	if err != nil {
		s.badRequest(c, err)
		return
	}

	if err = s.server.db.RemoveGroupMember(group.ID, pupilID); err != nil {
		s.replyError(c, err, lf.GroupID(group.ID), lf.PupilID(pupilID))
		return
	}

	c.Status(http.StatusNoContent)
}
