package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorlog/tutorlog/api"
	lf "github.com/tutorlog/tutorlog/internal/logfield"
	"github.com/tutorlog/tutorlog/internal/models"
)

type userService struct {
	webService
}

func setupUserService(server *server, r *gin.Engine) {
	s := userService{webService{server, server.config, server.logger}}

	g := r.Group("/api/user")
	g.POST("/login", s.login)
	g.POST("", s.create)
	g.GET("", s.list)
	g.GET("/:id", s.get)
	g.PATCH("/:id", s.update)
	g.DELETE("/:id", s.delete)
}

func (s userService) login(c *gin.Context) {
	req := api.LoginRequest{}
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	user, err := s.server.db.LoginUser(&models.User{
		GoogleUserID:  req.GoogleUserID,
		Email:         req.Email,
		FullName:      req.FullName,
		ProfilePicURL: req.ProfilePicURL,
	})
	if err != nil {
		s.replyError(c, err)
		return
	}

	session, err := s.server.db.CreateSession(user.ID)
	if err != nil {
		s.replyError(c, err, lf.UserID(user.ID))
		return
	}

	s.log.Info("User logged in", lf.UserID(user.ID))
	c.JSON(http.StatusOK, &api.LoginResponse{
		Status: api.StatusOk(),
		Token:  session.Token,
		User:   user,
	})
}

func (s userService) create(c *gin.Context) {
	req := api.CreateUserRequest{}
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	user, err := s.server.db.AddUser(&models.User{
		GoogleUserID:  req.GoogleUserID,
		Email:         req.Email,
		FullName:      req.FullName,
		ProfilePicURL: req.ProfilePicURL,
	})
	if err != nil {
		s.replyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, &api.UserResponse{Status: api.StatusOk(), User: user})
}

func (s userService) list(c *gin.Context) {
	skip, limit, err := parsePagination(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}

	users, err := s.server.db.ListUsers(skip, limit)
	if err != nil {
		s.replyError(c, err)
		return
	}

	c.JSON(http.StatusOK, &api.UsersResponse{Status: api.StatusOk(), Users: users})
}

func (s userService) get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		s.badRequest(c, err)
		return
	}

	user, err := s.server.db.FindUserByID(id)
	if err != nil {
		s.replyError(c, err, lf.UserID(id))
		return
	}

	c.JSON(http.StatusOK, &api.UserResponse{Status: api.StatusOk(), User: user})
}

func (s userService) update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		s.badRequest(c, err)
		return
	}

	req := api.UpdateUserRequest{}
	if err = c.BindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.ProfilePicURL != nil {
		updates["profile_pic_url"] = *req.ProfilePicURL
	}
	if req.LastLoginAt != nil {
		updates["last_login_at"] = *req.LastLoginAt
	}
	if len(updates) == 0 {
		user, err := s.server.db.FindUserByID(id)
		if err != nil {
			s.replyError(c, err, lf.UserID(id))
			return
		}
		c.JSON(http.StatusOK, &api.UserResponse{Status: api.StatusOk(), User: user})
		return
	}

	user, err := s.server.db.UpdateUser(id, updates)
	if err != nil {
		s.replyError(c, err, lf.UserID(id))
		return
	}

	c.JSON(http.StatusOK, &api.UserResponse{Status: api.StatusOk(), User: user})
}

func (s userService) delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		s.badRequest(c, err)
		return
	}

	if err = s.server.db.DeleteUser(id); err != nil {
		s.replyError(c, err, lf.UserID(id))
		return
	}

	c.Status(http.StatusNoContent)
}
