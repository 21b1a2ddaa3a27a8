package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/tutorlog/tutorlog/api"
	"github.com/tutorlog/tutorlog/internal/database"
	lf "github.com/tutorlog/tutorlog/internal/logfield"
	"github.com/tutorlog/tutorlog/internal/models"
)

type paymentService struct {
	webService
}

func setupPaymentService(server *server, r *gin.Engine) {
	s := paymentService{webService{server, server.config, server.logger}}

	g := r.Group("/api/payment")
	g.POST("", s.create)
	g.GET("", s.list)
	g.GET("/pupil/:pupilID", s.listByPupil)
	g.GET("/pupil/:pupilID/:year/:month", s.listByPupilMonth)
	g.GET("/:id", s.get)
	g.PUT("/:id", s.update)
	g.DELETE("/:id", s.delete)
}

func (s paymentService) create(c *gin.Context) {
	req := api.CreatePaymentRequest{}
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	payment, err := s.server.db.AddPayment(&models.Payment{
		PupilID:     req.PupilID,
		Amount:      req.Amount,
		Month:       req.Month,
		Year:        req.Year,
		PaymentDate: req.PaymentDate,
		PaymentMode: req.PaymentMode,
		Notes:       req.Notes,
	})
	if err != nil {
		s.replyError(c, err, lf.PupilID(req.PupilID))
		return
	}

	s.log.Info("Recorded payment", lf.PaymentID(payment.ID), lf.PupilID(payment.PupilID))
	c.JSON(http.StatusCreated, &api.PaymentResponse{Status: api.StatusOk(), Payment: payment})
}

func parseOptionalInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", name)
	}
	return value, nil
}

func (s paymentService) list(c *gin.Context) {
	skip, limit, err := parsePagination(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}

	filter := database.PaymentFilter{Skip: skip, Limit: limit}
	pupilID, err := parseOptionalInt(c, "pupil_id")
	if err != nil {
		s.badRequest(c, err)
		return
	}
	filter.PupilID = uint(pupilID)
	if filter.Month, err = parseOptionalInt(c, "month"); err != nil {
		s.badRequest(c, err)
		return
	}
	if filter.Year, err = parseOptionalInt(c, "year"); err != nil {
		s.badRequest(c, err)
		return
	}
	if filter.Month < 0 || filter.Month > 12 {
		s.badRequest(c, errors.New("month must be between 1 and 12"))
		return
	}

	payments, err := s.server.db.ListPayments(filter)
	if err != nil {
		s.replyError(c, err)
		return
	}

	c.JSON(http.StatusOK, &api.PaymentsResponse{Status: api.StatusOk(), Payments: payments})
}

func (s paymentService) listByPupil(c *gin.Context) {
	pupilID, err := parseID(c, "pupilID")
	if err != nil {
		s.badRequest(c, err)
		return
	}
	skip, limit, err := parsePagination(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}

	payments, err := s.server.db.ListPayments(database.PaymentFilter{
		PupilID: pupilID,
		Skip:    skip,
		Limit:   limit,
	})
	if err != nil {
		s.replyError(c, err, lf.PupilID(pupilID))
		return
	}

	c.JSON(http.StatusOK, &api.PaymentsResponse{Status: api.StatusOk(), Payments: payments})
}

func (s paymentService) listByPupilMonth(c *gin.Context) {
	pupilID, err := parseID(c, "pupilID")
	if err != nil {
		s.badRequest(c, err)
		return
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1900 {
		s.badRequest(c, errors.New("year must be 1900 or later"))
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		s.badRequest(c, errors.New("month must be between 1 and 12"))
		return
	}

	payments, err := s.server.db.ListPayments(database.PaymentFilter{
		PupilID: pupilID,
		Month:   month,
		Year:    year,
		Limit:   maxPageLimit,
	})
	if err != nil {
		s.replyError(c, err, lf.PupilID(pupilID))
		return
	}

	c.JSON(http.StatusOK, &api.PaymentsResponse{Status: api.StatusOk(), Payments: payments})
}

func (s paymentService) get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		s.badRequest(c, err)
		return
	}

	payment, err := s.server.db.FindPaymentByID(id)
	if err != nil {
		s.replyError(c, err, lf.PaymentID(id))
		return
	}

	c.JSON(http.StatusOK, &api.PaymentResponse{Status: api.StatusOk(), Payment: payment})
}

func (s paymentService) update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		s.badRequest(c, err)
		return
	}

	req := api.UpdatePaymentRequest{}
	if err = c.BindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.Month != nil {
		updates["month"] = *req.Month
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.PaymentDate != nil {
		updates["payment_date"] = *req.PaymentDate
	}
	if req.PaymentMode != nil {
		updates["payment_mode"] = *req.PaymentMode
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) == 0 {
		s.badRequest(c, errors.New("no fields to update"))
		return
	}

	payment, err := s.server.db.UpdatePayment(id, updates)
	if err != nil {
		s.replyError(c, err, lf.PaymentID(id))
		return
	}

	c.JSON(http.StatusOK, &api.PaymentResponse{Status: api.StatusOk(), Payment: payment})
}

func (s paymentService) delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		s.badRequest(c, err)
		return
	}

	if err = s.server.db.DeletePayment(id); err != nil {
		s.replyError(c, err, lf.PaymentID(id))
		return
	}

	c.Status(http.StatusNoContent)
}
