package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorlog/tutorlog/api"
	"github.com/tutorlog/tutorlog/internal/database"
	lf "github.com/tutorlog/tutorlog/internal/logfield"
	"github.com/tutorlog/tutorlog/internal/models"
)

type pupilService struct {
	webService
}

func setupPupilService(server *server, r *gin.Engine) {
	s := pupilService{webService{server, server.config, server.logger}}

	g := r.Group("/api/pupil")
	g.POST("", s.create)
	g.GET("", s.list)
	g.GET("/count", s.count)
	g.GET("/:id", s.get)
	g.PUT("/:id", s.update)
	g.PATCH("/:id", s.update)
	g.DELETE("/:id", s.delete)
}

func (s pupilService) create(c *gin.Context) {
	req := api.CreatePupilRequest{}
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	pupil, err := s.server.db.AddPupil(&models.Pupil{
		FullName:    req.FullName,
		Email:       req.Email,
		Mobile:      req.Mobile,
		FatherName:  req.FatherName,
		MotherName:  req.MotherName,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		EnrolledOn:  req.EnrolledOn,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		s.replyError(c, err)
		return
	}

	s.log.Info("Created pupil", lf.PupilID(pupil.ID), lf.UserID(pupil.OwnerID))
	c.JSON(http.StatusCreated, &api.PupilResponse{Status: api.StatusOk(), Pupil: pupil})
}

func (s pupilService) list(c *gin.Context) {
	skip, limit, err := parsePagination(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}

	pupils, err := s.server.db.ListPupils(database.PupilFilter{
		Search: c.Query("search"),
		Gender: c.Query("gender"),
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		s.replyError(c, err)
		return
	}

	c.JSON(http.StatusOK, &api.PupilsResponse{Status: api.StatusOk(), Pupils: pupils})
}

func (s pupilService) count(c *gin.Context) {
	count, err := s.server.db.CountPupils()
	if err != nil {
		s.replyError(c, err)
		return
	}

	c.JSON(http.StatusOK, &api.PupilCountResponse{Status: api.StatusOk(), TotalPupils: count})
}

func (s pupilService) get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		s.badRequest(c, err)
		return
	}

	pupil, err := s.server.db.FindPupilByID(id)
	if err != nil {
		s.replyError(c, err, lf.PupilID(id))
		return
	}

	c.JSON(http.StatusOK, &api.PupilResponse{Status: api.StatusOk(), Pupil: pupil})
}

func (s pupilService) update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		s.badRequest(c, err)
		return
	}

	req := api.UpdatePupilRequest{}
	if err = c.BindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Mobile != nil {
		updates["mobile"] = *req.Mobile
	}
	if req.FatherName != nil {
		updates["father_name"] = *req.FatherName
	}
	if req.MotherName != nil {
		updates["mother_name"] = *req.MotherName
	}
	if req.DateOfBirth != nil {
		updates["date_of_birth"] = *req.DateOfBirth
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.EnrolledOn != nil {
		updates["enrolled_on"] = *req.EnrolledOn
	}

	pupil, err := s.server.db.UpdatePupil(id, updates)
	if err != nil {
		s.replyError(c, err, lf.PupilID(id))
		return
	}

	c.JSON(http.StatusOK, &api.PupilResponse{Status: api.StatusOk(), Pupil: pupil})
}

func (s pupilService) delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		s.badRequest(c, err)
		return
	}

	if err = s.server.db.DeletePupil(id); err != nil {
		s.replyError(c, err, lf.PupilID(id))
		return
	}

	c.Status(http.StatusNoContent)
}
