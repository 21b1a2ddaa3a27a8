package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/tutorlog/tutorlog/api"
	"github.com/tutorlog/tutorlog/internal/database"
	lf "github.com/tutorlog/tutorlog/internal/logfield"
	"github.com/tutorlog/tutorlog/internal/models"
	"github.com/tutorlog/tutorlog/internal/schedule"
)

type eventService struct {
	webService
}

func setupEventService(server *server, r *gin.Engine) {
	s := eventService{webService{server, server.config, server.logger}}

	g := r.Group("/api/event")
	g.POST("", s.create)
	g.GET("", s.calendar)
	g.GET("/:id", s.get)
	g.PUT("/:id", s.update)
	g.DELETE("/:id", s.delete)

	g.GET("/:id/repeat-days", s.listRepeatDays)
	g.POST("/:id/repeat-days", s.addRepeatDays)
	g.PUT("/:id/repeat-days", s.replaceRepeatDays)
	g.DELETE("/:id/repeat-days", s.removeRepeatDays)

	g.GET("/:id/pupils", s.listPupils)
	g.POST("/:id/pupils", s.addPupils)
	g.PUT("/:id/pupils", s.reconcilePupils)
	g.DELETE("/:id/pupils", s.removePupils)
}

func validateEventTimes(start, end time.Time) error {
	if !start.Before(end) {
		return errors.New("start time must be before end time")
	}
	return nil
}

func calendarKey(owner uint, from, to time.Time, eventType string) string {
	return fmt.Sprintf("calendar/%d/%s/%s/%s", owner, from.Format(dateLayout), to.Format(dateLayout), eventType)
}

func (s eventService) invalidateCalendar(owner uint) {
	s.server.calendar.DeletePrefix(fmt.Sprintf("calendar/%d/", owner))
}

// ownedEvent loads the event and checks the acting user owns it.
func (s eventService) ownedEvent(c *gin.Context) (*models.Event, bool) {
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

	event, err := s.server.db.FindEventByID(id)
	if err != nil {
		s.replyError(c, err, lf.EventID(id))
		return nil, false
	}
	if event.OwnerID != user {
		s.forbidden(c, "not authorized to access this event")
		return nil, false
	}
	return event, true
}

func (s eventService) create(c *gin.Context) {
	user, err := currentUserID(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}

	req := api.CreateEventRequest{}
	if err = c.BindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	if err = validateEventTimes(req.StartTime, req.EndTime); err != nil {
		s.badRequest(c, err)
		return
	}
	if req.RepeatPattern != nil && *req.RepeatPattern == models.RepeatPatternWeekly && len(req.RepeatDays) == 0 {
		s.badRequest(c, errors.New("weekly repeat pattern requires repeat days"))
		return
	}

	event := &models.Event{
		Title:         req.Title,
		Description:   req.Description,
		EventType:     req.EventType,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		RepeatPattern: req.RepeatPattern,
		RepeatUntil:   req.RepeatUntil,
		OwnerID:       user,
	}

	event, err = s.server.db.AddEvent(event, req.RepeatDays)
	if err != nil {
		s.replyError(c, err, lf.UserID(user))
		return
	}

	s.invalidateCalendar(user)
	s.log.Info("Created event", lf.EventID(event.ID), lf.UserID(user))
	c.JSON(http.StatusCreated, &api.EventResponse{Status: api.StatusOk(), Event: event})
}

func (s eventService) calendar(c *gin.Context) {
	user, err := currentUserID(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}

	defaultFrom, defaultTo := schedule.MonthRange(time.Now())
	from, to, err := parseDateRange(c, defaultFrom, defaultTo)
	if err != nil {
		s.badRequest(c, err)
		return
	}
	eventType := c.Query("type")

	if c.DefaultQuery("includeRepeats", "true") != "true" {
		events, err := s.server.db.ListEvents(database.EventFilter{
			Owner:     user,
			EventType: eventType,
			From:      from,
			To:        to,
		})
		if err != nil {
			s.replyError(c, err, lf.UserID(user))
			return
		}
		c.JSON(http.StatusOK, &api.EventsResponse{Status: api.StatusOk(), Events: events})
		return
	}

	key := calendarKey(user, from, to, eventType)
	if item := s.server.calendar.Get(key); item != nil && !item.Expired() {
		c.JSON(http.StatusOK, &api.CalendarResponse{
			Status:    api.StatusOk(),
			Instances: item.Value().([]schedule.Instance),
		})
		return
	}

	events, err := s.server.db.ListEvents(database.EventFilter{
		Owner:     user,
		EventType: eventType,
		From:      from,
		To:        to,
	})
	if err != nil {
		s.replyError(c, err, lf.UserID(user))
		return
	}

	ids := make([]uint, 0, len(events))
	for _, event := range events {
		ids = append(ids, event.ID)
	}
	repeatDays, err := s.server.db.ListRepeatDaysForEvents(ids)
	if err != nil {
		s.replyError(c, err, lf.UserID(user))
		return
	}

	instances := schedule.ExpandAll(events, repeatDays, from, to)
	s.server.calendar.Set(key, instances, s.config.Cache.CalendarTTL)

	c.JSON(http.StatusOK, &api.CalendarResponse{Status: api.StatusOk(), Instances: instances})
}

func (s eventService) get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		s.badRequest(c, err)
		return
	}

	event, err := s.server.db.FindEventByID(id)
	if err != nil {
		s.replyError(c, err, lf.EventID(id))
		return
	}

	c.JSON(http.StatusOK, &api.EventResponse{Status: api.StatusOk(), Event: event})
}

func (s eventService) update(c *gin.Context) {
	event, ok := s.ownedEvent(c)
	if !ok {
		return
	}

	req := api.UpdateEventRequest{}
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	start, end := event.StartTime, event.EndTime
	if req.StartTime != nil {
		start = *req.StartTime
	}
	if req.EndTime != nil {
		end = *req.EndTime
	}
	if err := validateEventTimes(start, end); err != nil {
		s.badRequest(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.EventType != nil {
		updates["event_type"] = *req.EventType
	}
	if req.StartTime != nil {
		updates["start_time"] = *req.StartTime
	}
	if req.EndTime != nil {
		updates["end_time"] = *req.EndTime
	}
	if req.RepeatPattern != nil {
		updates["repeat_pattern"] = *req.RepeatPattern
	}
	if req.RepeatUntil != nil {
		updates["repeat_until"] = *req.RepeatUntil
	}

	var days []int
	if req.RepeatDays != nil {
		days = *req.RepeatDays
	}

	futureOnly := c.Query("futureOnly") == "true"
	if futureOnly && event.RepeatPattern != nil {
		// split the series: truncate the original, apply changes to a copy
		// that starts today
		split, err := s.server.db.SplitEvent(event, updates, days)
		if err != nil {
			s.replyError(c, err, lf.EventID(event.ID))
			return
		}
		s.invalidateCalendar(event.OwnerID)
		c.JSON(http.StatusOK, &api.EventResponse{Status: api.StatusOk(), Event: split})
		return
	}

	updated := event
	if len(updates) > 0 {
		var err error
		updated, err = s.server.db.UpdateEvent(event.ID, updates)
		if err != nil {
			s.replyError(c, err, lf.EventID(event.ID))
			return
		}
	}

	if req.RepeatDays != nil && weekly(updated) {
		if _, err := s.server.db.ReplaceEventRepeatDays(event.ID, days); err != nil {
			s.replyError(c, err, lf.EventID(event.ID))
			return
		}
	}

	s.invalidateCalendar(event.OwnerID)
	c.JSON(http.StatusOK, &api.EventResponse{Status: api.StatusOk(), Event: updated})
}

func weekly(event *models.Event) bool {
	return event.RepeatPattern != nil && *event.RepeatPattern == models.RepeatPatternWeekly
}

func (s eventService) delete(c *gin.Context) {
	event, ok := s.ownedEvent(c)
	if !ok {
		return
	}

	futureOnly := c.Query("futureOnly") == "true"
	if futureOnly && event.RepeatPattern != nil {
		// keep past instances, stop the recurrence today
		_, err := s.server.db.UpdateEvent(event.ID, map[string]interface{}{
			"repeat_until": time.Now(),
		})
		if err != nil {
			s.replyError(c, err, lf.EventID(event.ID))
			return
		}
		s.invalidateCalendar(event.OwnerID)
		c.JSON(http.StatusOK, api.StatusOk())
		return
	}

	if err := s.server.db.DeleteEvent(event.ID); err != nil {
		s.replyError(c, err, lf.EventID(event.ID))
		return
	}

	s.invalidateCalendar(event.OwnerID)
	c.Status(http.StatusNoContent)
}

func (s eventService) listRepeatDays(c *gin.Context) {
	event, ok := s.ownedEvent(c)
	if !ok {
		return
	}

	days, err := s.server.db.ListEventRepeatDays(event.ID)
	if err != nil {
		s.replyError(c, err, lf.EventID(event.ID))
		return
	}

	c.JSON(http.StatusOK, &api.RepeatDaysResponse{Status: api.StatusOk(), Days: days})
}

func (s eventService) addRepeatDays(c *gin.Context) {
	event, ok := s.ownedEvent(c)
	if !ok {
		return
	}

	req := api.RepeatDaysRequest{}
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	days, err := s.server.db.AddEventRepeatDays(event.ID, req.Days)
	if err != nil {
		s.replyError(c, err, lf.EventID(event.ID))
		return
	}

	s.invalidateCalendar(event.OwnerID)
	c.JSON(http.StatusCreated, &api.RepeatDaysResponse{Status: api.StatusOk(), Days: days})
}

func (s eventService) replaceRepeatDays(c *gin.Context) {
	event, ok := s.ownedEvent(c)
	if !ok {
		return
	}

	req := api.RepeatDaysRequest{}
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	days, err := s.server.db.ReplaceEventRepeatDays(event.ID, req.Days)
	if err != nil {
		s.replyError(c, err, lf.EventID(event.ID))
		return
	}

	s.invalidateCalendar(event.OwnerID)
	c.JSON(http.StatusOK, &api.RepeatDaysResponse{Status: api.StatusOk(), Days: days})
}

func (s eventService) removeRepeatDays(c *gin.Context) {
	event, ok := s.ownedEvent(c)
	if !ok {
		return
	}

	req := api.RepeatDayIDsRequest{}
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	if err := s.server.db.RemoveEventRepeatDays(event.ID, req.IDs); err != nil {
		s.replyError(c, err, lf.EventID(event.ID))
		return
	}

	s.invalidateCalendar(event.OwnerID)
	c.Status(http.StatusNoContent)
}

func (s eventService) listPupils(c *gin.Context) {
	event, ok := s.ownedEvent(c)
	if !ok {
		return
	}

	pupils, err := s.server.db.ListEventPupils(event.ID)
	if err != nil {
		s.replyError(c, err, lf.EventID(event.ID))
		return
	}

	c.JSON(http.StatusOK, &api.EventPupilsResponse{Status: api.StatusOk(), Pupils: pupils})
}

func (s eventService) addPupils(c *gin.Context) {
	event, ok := s.ownedEvent(c)
	if !ok {
		return
	}

	req := api.EventPupilsRequest{}
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	if len(req.PupilIDs) == 0 {
		s.badRequest(c, errors.New("pupil_ids must not be empty"))
		return
	}

	pupils, err := s.server.db.AddEventPupils(event.ID, req.PupilIDs)
	if err != nil {
		s.replyError(c, err, lf.EventID(event.ID))
		return
	}

	c.JSON(http.StatusCreated, &api.EventPupilsResponse{Status: api.StatusOk(), Pupils: pupils})
}

func (s eventService) reconcilePupils(c *gin.Context) {
	event, ok := s.ownedEvent(c)
	if !ok {
		return
	}

	req := api.EventPupilsRequest{}
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	pupils, err := s.server.db.ReconcileEventPupils(event.ID, req.PupilIDs)
	if err != nil {
		s.replyError(c, err, lf.EventID(event.ID))
		return
	}

	c.JSON(http.StatusOK, &api.EventPupilsResponse{Status: api.StatusOk(), Pupils: pupils})
}

func (s eventService) removePupils(c *gin.Context) {
	event, ok := s.ownedEvent(c)
	if !ok {
		return
	}

	req := api.EventPupilsRequest{}
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	if len(req.PupilIDs) == 0 {
		s.badRequest(c, errors.New("pupil_ids must not be empty"))
		return
	}

	if err := s.server.db.RemoveEventPupils(event.ID, req.PupilIDs); err != nil {
		s.replyError(c, err, lf.EventID(event.ID))
		return
	}

	c.Status(http.StatusNoContent)
}
