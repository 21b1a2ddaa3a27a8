package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tutorlog/tutorlog/internal/models"
)

type PupilFilter struct {
	Search string
	Gender models.Gender
	Skip   int
	Limit  int
}

func (db *DataBase) AddPupil(pupil *models.Pupil) (*models.Pupil, error) {
	err := db.Create(pupil).Error
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &DuplicateKey{err}
		}
		return nil, err
	}
	return pupil, nil
}

func (db *DataBase) FindPupilByID(id uint) (*models.Pupil, error) {
	var pupil models.Pupil
	err := db.First(&pupil, id).Error
	if err != nil {
		return nil, err
	}
	return &pupil, nil
}

func (db *DataBase) ListPupils(filter PupilFilter) (pupils []models.Pupil, err error) {
	pupils = make([]models.Pupil, 0)
	query := db.DB
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}
	if filter.Gender != "" {
		query = query.Where("gender = ?", filter.Gender)
	}
	err = query.Offset(filter.Skip).Limit(filter.Limit).Order("id").Find(&pupils).Error
	if err != nil {
		pupils = nil
	}
	return
}

func (db *DataBase) UpdatePupil(id uint, updates map[string]interface{}) (*models.Pupil, error) {
	updates["updated_at"] = time.Now()
	res := db.Model(&models.Pupil{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return nil, &DuplicateKey{res.Error}
		}
		return nil, res.Error
	}
	if res.RowsAffected < 1 {
		return nil, fmt.Errorf("unknown pupil %d: %w", id, gorm.ErrRecordNotFound)
	}
	return db.FindPupilByID(id)
}

func (db *DataBase) DeletePupil(id uint) error {
	res := db.Delete(&models.Pupil{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected < 1 {
		return fmt.Errorf("unknown pupil %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

func (db *DataBase) CountPupils() (int64, error) {
	var count int64
	err := db.Model(&models.Pupil{}).Count(&count).Error
	return count, err
}
