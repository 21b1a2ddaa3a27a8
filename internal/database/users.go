package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tutorlog/tutorlog/internal/models"
)

func (db *DataBase) AddUser(user *models.User) (*models.User, error) {
	err := db.Create(user).Error
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &DuplicateKey{err}
		}
		return nil, err
	}
	return user, nil
}

// LoginUser upserts the user by google id and bumps last_login_at.
func (db *DataBase) LoginUser(user *models.User) (*models.User, error) {
	var res models.User
	err := db.Where(models.User{GoogleUserID: user.GoogleUserID}).
		Attrs(models.User{
			Email:         user.Email,
			FullName:      user.FullName,
			ProfilePicURL: user.ProfilePicURL,
		}).
		FirstOrCreate(&res).Error
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &DuplicateKey{err}
		}
		return nil, err
	}

	now := time.Now()
	err = db.Model(&res).Update("last_login_at", now).Error
	if err != nil {
		return nil, err
	}
	res.LastLoginAt = &now
	return &res, nil
}

func (db *DataBase) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	err := db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *DataBase) FindUserByGoogleID(id string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "google_user_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *DataBase) ListUsers(skip, limit int) (users []models.User, err error) {
	users = make([]models.User, 0)
	err = db.Offset(skip).Limit(limit).Order("id").Find(&users).Error
	if err != nil {
		users = nil
	}
	return
}

func (db *DataBase) UpdateUser(id uint, updates map[string]interface{}) (*models.User, error) {
	res := db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return nil, &DuplicateKey{res.Error}
		}
		return nil, res.Error
	}
	if res.RowsAffected < 1 {
		return nil, fmt.Errorf("unknown user %d: %w", id, gorm.ErrRecordNotFound)
	}
	return db.FindUserByID(id)
}

func (db *DataBase) DeleteUser(id uint) error {
	res := db.Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected < 1 {
		return fmt.Errorf("unknown user %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

func (db *DataBase) CreateSession(user uint) (*models.Session, error) {
	session := &models.Session{
		Token:  uuid.Must(uuid.NewUUID()).String(),
		UserID: user,
	}
	res := db.Create(session)
	if res.Error != nil {
		return nil, res.Error
	}
	return session, nil
}

func (db *DataBase) FindSession(token string) (*models.Session, error) {
	var session models.Session
	res := db.DB.Where("token", token).Take(&session)
	if res.Error != nil {
		return nil, res.Error
	}
	return &session, nil
}

func (db *DataBase) FindUserBySession(token string) (*models.User, *models.Session, error) {
	session, err := db.FindSession(token)
	if err != nil {
		return nil, nil, err
	}
	user, err := db.FindUserByID(session.UserID)
	if err != nil {
		return nil, session, err
	}
	return user, session, nil
}
