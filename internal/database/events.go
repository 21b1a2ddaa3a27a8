package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tutorlog/tutorlog/internal/models"
)

type EventFilter struct {
	Owner     uint
	EventType models.EventType
	From      time.Time
	To        time.Time
}

func (db *DataBase) AddEvent(event *models.Event, repeatDays []int) (*models.Event, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		return createRepeatDays(tx, event.ID, repeatDays)
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func createRepeatDays(tx *gorm.DB, eventID uint, days []int) error {
	if len(days) == 0 {
		return nil
	}
	rows := make([]models.EventRepeatDay, 0, len(days))
	for _, day := range days {
		rows = append(rows, models.EventRepeatDay{EventID: eventID, DayOfWeek: day})
	}
	return tx.Create(&rows).Error
}

func (db *DataBase) FindEventByID(id uint) (*models.Event, error) {
	var event models.Event
	err := db.First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ListEvents returns events that may produce instances within [From, To]:
// one-off events starting in the range plus recurring events whose recurrence
// overlaps it.
func (db *DataBase) ListEvents(filter EventFilter) (events []models.Event, err error) {
	events = make([]models.Event, 0)
	query := db.Where("owner_id = ?", filter.Owner)
	if filter.EventType != "" {
		query = query.Where("event_type = ?", filter.EventType)
	}

	from := filter.From
	to := filter.To.Add(24*time.Hour - time.Nanosecond)
	query = query.Where(
		db.DB.
			Where("repeat_pattern IS NULL AND start_time >= ? AND start_time <= ?", from, to).
			Or("repeat_pattern IS NOT NULL AND start_time <= ? AND (repeat_until IS NULL OR repeat_until >= ?)", to, from),
	)

	err = query.Order("start_time").Find(&events).Error
	if err != nil {
		events = nil
	}
	return
}

func (db *DataBase) UpdateEvent(id uint, updates map[string]interface{}) (*models.Event, error) {
	updates["updated_at"] = time.Now()
	res := db.Model(&models.Event{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected < 1 {
		return nil, fmt.Errorf("unknown event %d: %w", id, gorm.ErrRecordNotFound)
	}
	return db.FindEventByID(id)
}

// SplitEvent truncates a recurring event at yesterday and creates a copy
// starting today with updates applied. Used to edit only future instances.
func (db *DataBase) SplitEvent(event *models.Event, updates map[string]interface{}, repeatDays []int) (*models.Event, error) {
	today := startOfDay(time.Now())
	yesterday := today.AddDate(0, 0, -1)

	split := *event
	split.ID = 0
	split.CreatedAt = time.Time{}
	split.UpdatedAt = time.Time{}
	split.StartTime = combine(today, event.StartTime)
	split.EndTime = split.StartTime.Add(event.EndTime.Sub(event.StartTime))

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(event).Updates(map[string]interface{}{
			"repeat_until": yesterday,
			"updated_at":   time.Now(),
		}).Error
		if err != nil {
			return err
		}

		if err = tx.Create(&split).Error; err != nil {
			return err
		}
		if len(updates) > 0 {
			if err = tx.Model(&split).Updates(updates).Error; err != nil {
				return err
			}
		}
		return createRepeatDays(tx, split.ID, repeatDays)
	})
	if err != nil {
		return nil, err
	}
	return db.FindEventByID(split.ID)
}

func (db *DataBase) DeleteEvent(id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.EventRepeatDay{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.EventPupil{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Event{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected < 1 {
			return fmt.Errorf("unknown event %d: %w", id, gorm.ErrRecordNotFound)
		}
		return nil
	})
}

func (db *DataBase) ListEventRepeatDays(eventID uint) (days []models.EventRepeatDay, err error) {
	days = make([]models.EventRepeatDay, 0)
	err = db.Find(&days, "event_id = ?", eventID).Error
	if err != nil {
		days = nil
	}
	return
}

// ListRepeatDaysForEvents fetches repeat days for a batch of events at once.
func (db *DataBase) ListRepeatDaysForEvents(eventIDs []uint) (map[uint][]int, error) {
	days := make(map[uint][]int)
	if len(eventIDs) == 0 {
		return days, nil
	}
	var rows []models.EventRepeatDay
	err := db.Find(&rows, "event_id IN ?", eventIDs).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		days[row.EventID] = append(days[row.EventID], row.DayOfWeek)
	}
	return days, nil
}

func (db *DataBase) AddEventRepeatDays(eventID uint, days []int) ([]models.EventRepeatDay, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		return createRepeatDays(tx, eventID, days)
	})
	if err != nil {
		return nil, err
	}
	return db.ListEventRepeatDays(eventID)
}

func (db *DataBase) ReplaceEventRepeatDays(eventID uint, days []int) ([]models.EventRepeatDay, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).Delete(&models.EventRepeatDay{}).Error; err != nil {
			return err
		}
		return createRepeatDays(tx, eventID, days)
	})
	if err != nil {
		return nil, err
	}
	return db.ListEventRepeatDays(eventID)
}

func (db *DataBase) RemoveEventRepeatDays(eventID uint, ids []uint) error {
	res := db.Where("event_id = ? AND id IN ?", eventID, ids).Delete(&models.EventRepeatDay{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected < 1 {
		return fmt.Errorf("no matching repeat days for event %d: %w", eventID, gorm.ErrRecordNotFound)
	}
	return nil
}

func (db *DataBase) ListEventPupils(eventID uint) (pupils []models.EventPupil, err error) {
	pupils = make([]models.EventPupil, 0)
	err = db.Find(&pupils, "event_id = ?", eventID).Error
	if err != nil {
		pupils = nil
	}
	return
}

func (db *DataBase) AddEventPupils(eventID uint, pupilIDs []uint) ([]models.EventPupil, error) {
	rows := make([]models.EventPupil, 0, len(pupilIDs))
	for _, pupil := range pupilIDs {
		rows = append(rows, models.EventPupil{EventID: eventID, PupilID: pupil, AddedAt: time.Now()})
	}
	err := db.Create(&rows).Error
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &DuplicateKey{err}
		}
		return nil, err
	}
	return rows, nil
}

// ReconcileEventPupils makes the pupil set of the event match pupilIDs exactly.
func (db *DataBase) ReconcileEventPupils(eventID uint, pupilIDs []uint) ([]models.EventPupil, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		if len(pupilIDs) == 0 {
			return tx.Where("event_id = ?", eventID).Delete(&models.EventPupil{}).Error
		}

		err := tx.Where("event_id = ? AND pupil_id NOT IN ?", eventID, pupilIDs).
			Delete(&models.EventPupil{}).Error
		if err != nil {
			return err
		}

		var current []models.EventPupil
		if err = tx.Find(&current, "event_id = ?", eventID).Error; err != nil {
			return err
		}
		known := make(map[uint]bool, len(current))
		for _, row := range current {
			known[row.PupilID] = true
		}

		added := make([]models.EventPupil, 0)
		for _, pupil := range pupilIDs {
			if !known[pupil] {
				added = append(added, models.EventPupil{EventID: eventID, PupilID: pupil, AddedAt: time.Now()})
			}
		}
		if len(added) == 0 {
			return nil
		}
		return tx.Create(&added).Error
	})
	if err != nil {
		return nil, err
	}
	return db.ListEventPupils(eventID)
}

func (db *DataBase) RemoveEventPupils(eventID uint, pupilIDs []uint) error {
	res := db.Where("event_id = ? AND pupil_id IN ?", eventID, pupilIDs).Delete(&models.EventPupil{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected < 1 {
		return fmt.Errorf("no pupils assigned to event %d: %w", eventID, gorm.ErrRecordNotFound)
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func combine(day, clock time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, clock.Location())
}
