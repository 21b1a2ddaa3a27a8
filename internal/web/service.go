package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tutorlog/tutorlog/api"
	"github.com/tutorlog/tutorlog/internal/config"
	"github.com/tutorlog/tutorlog/internal/database"
)

type webService struct {
	server *server
	config *config.Config
	log    *zap.Logger
}

func (s webService) replyError(c *gin.Context, err error, fields ...zap.Field) {
	code := http.StatusInternalServerError
	switch {
	case database.IsNotFound(err):
		code = http.StatusNotFound
	case database.IsDuplicateKey(err):
		code = http.StatusConflict
	}

	fields = append(fields, zap.Error(err))
	if code == http.StatusInternalServerError {
		s.log.Error("Request failed", fields...)
	} else {
		s.log.Warn("Request failed", fields...)
	}
	c.AbortWithStatusJSON(code, api.Status{Error: err.Error()})
}

func (s webService) badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, api.Status{Error: err.Error()})
}

func (s webService) forbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, api.Status{Error: message})
}

func parseID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", param)
	}
	return uint(id), nil
}

// currentUserID extracts the acting user from the X-User-ID header or the
// user_id query parameter.
func currentUserID(c *gin.Context) (uint, error) {
	raw := c.GetHeader("X-User-ID")
	if raw == "" {
		raw = c.Query("user_id")
	}
	if raw == "" {
		return 0, errors.New("user identity required (X-User-ID header or user_id query)")
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.Wrap(err, "invalid user id")
	}
	return uint(id), nil
}

const (
	defaultPageLimit = 100
	maxPageLimit     = 1000
)

func parsePagination(c *gin.Context) (skip, limit int, err error) {
	skip, err = strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		return 0, 0, errors.New("skip must be a non-negative integer")
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if err != nil || limit < 1 || limit > maxPageLimit {
		return 0, 0, errors.Errorf("limit must be between 1 and %d", maxPageLimit)
	}
	return skip, limit, nil
}

const dateLayout = "2006-01-02"

// parseDateRange reads from/to query params, defaulting to the current month.
func parseDateRange(c *gin.Context, defaultFrom, defaultTo time.Time) (from, to time.Time, err error) {
	from, to = defaultFrom, defaultTo
	if raw := c.Query("from"); raw != "" {
		from, err = time.Parse(dateLayout, raw)
		if err != nil {
			return from, to, errors.Wrap(err, "invalid from date")
		}
	}
	if raw := c.Query("to"); raw != "" {
		to, err = time.Parse(dateLayout, raw)
		if err != nil {
			return from, to, errors.Wrap(err, "invalid to date")
		}
	}
	if to.Before(from) {
		return from, to, errors.New("to date must not precede from date")
	}
	return from, to, nil
}
