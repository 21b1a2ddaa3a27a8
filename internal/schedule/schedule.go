package schedule

import (
	"time"

	"golang.org/x/exp/slices"

	"github.com/tutorlog/tutorlog/internal/models"
)

// Instance is a concrete occurrence of an event within a calendar range.
// Recurring events produce one instance per matching day, one-off events
// at most one.
type Instance struct {
	EventID          uint                  `json:"event_id"`
	Title            string                `json:"title"`
	Description      *string               `json:"description,omitempty"`
	EventType        models.EventType      `json:"event_type"`
	StartTime        time.Time             `json:"start_time"`
	EndTime          time.Time             `json:"end_time"`
	RepeatPattern    *models.RepeatPattern `json:"repeat_pattern,omitempty"`
	RepeatUntil      *time.Time            `json:"repeat_until,omitempty"`
	IsRepeatInstance bool                  `json:"is_repeat_instance"`
	OriginalDate     time.Time             `json:"original_date"`
	InstanceDate     time.Time             `json:"instance_date"`
}

// MonthRange returns the first and last day of now's month.
func MonthRange(now time.Time) (from, to time.Time) {
	from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to = from.AddDate(0, 1, -1)
	return
}

// Expand generates instances of event within [from, to] (date granularity,
// inclusive). repeatDays uses time.Weekday numbering and only matters for
// weekly recurrence.
func Expand(event *models.Event, repeatDays []int, from, to time.Time) []Instance {
	from = dateOf(from)
	to = dateOf(to)
	eventDate := dateOf(event.StartTime)

	instances := make([]Instance, 0)

	if event.RepeatPattern == nil {
		if !eventDate.Before(from) && !eventDate.After(to) {
			instances = append(instances, makeInstance(event, eventDate, false))
		}
		return instances
	}

	cur := maxDate(from, eventDate)
	end := to
	if event.RepeatUntil != nil {
		end = minDate(end, dateOf(*event.RepeatUntil))
	}

	switch *event.RepeatPattern {
	case models.RepeatPatternDaily:
		for ; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
			instances = append(instances, makeInstance(event, cur, true))
		}

	case models.RepeatPatternWeekly:
		if len(repeatDays) == 0 {
			repeatDays = []int{int(event.StartTime.Weekday())}
		}
		for ; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
			if slices.Contains(repeatDays, int(cur.Weekday())) {
				instances = append(instances, makeInstance(event, cur, true))
			}
		}

	case models.RepeatPatternMonthly:
		day := event.StartTime.Day()
		month := time.Date(cur.Year(), cur.Month(), 1, 0, 0, 0, 0, cur.Location())
		for ; !month.After(end); month = month.AddDate(0, 1, 0) {
			date := time.Date(month.Year(), month.Month(), day, 0, 0, 0, 0, month.Location())
			// overflow (e.g. Feb 30) normalizes into the next month
			if date.Day() != day {
				continue
			}
			if !date.Before(cur) && !date.After(end) {
				instances = append(instances, makeInstance(event, date, true))
			}
		}
	}

	return instances
}

// ExpandAll expands every event and returns the instances ordered by start
// time.
func ExpandAll(events []models.Event, repeatDays map[uint][]int, from, to time.Time) []Instance {
	instances := make([]Instance, 0)
	for i := range events {
		event := &events[i]
		instances = append(instances, Expand(event, repeatDays[event.ID], from, to)...)
	}
	slices.SortStableFunc(instances, func(a, b Instance) bool {
		return a.StartTime.Before(b.StartTime)
	})
	return instances
}

func makeInstance(event *models.Event, date time.Time, repeat bool) Instance {
	return Instance{
		EventID:          event.ID,
		Title:            event.Title,
		Description:      event.Description,
		EventType:        event.EventType,
		StartTime:        combine(date, event.StartTime),
		EndTime:          combine(date, event.EndTime),
		RepeatPattern:    event.RepeatPattern,
		RepeatUntil:      event.RepeatUntil,
		IsRepeatInstance: repeat,
		OriginalDate:     dateOf(event.StartTime),
		InstanceDate:     date,
	}
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func combine(day, clock time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, clock.Location())
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
