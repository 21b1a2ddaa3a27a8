package database

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tutorlog/tutorlog/internal/models"
)

type PaymentFilter struct {
	PupilID uint
	Month   int
	Year    int
	Skip    int
	Limit   int
}

func (db *DataBase) AddPayment(payment *models.Payment) (*models.Payment, error) {
	payment.Reference = uuid.New().String()
	err := db.Create(payment).Error
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &DuplicateKey{err}
		}
		return nil, err
	}
	return payment, nil
}

func (db *DataBase) FindPaymentByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	err := db.First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (db *DataBase) ListPayments(filter PaymentFilter) (payments []models.Payment, err error) {
	payments = make([]models.Payment, 0)
	query := db.DB
	if filter.PupilID != 0 {
		query = query.Where("pupil_id = ?", filter.PupilID)
	}
	if filter.Month != 0 {
		query = query.Where("month = ?", filter.Month)
	}
	if filter.Year != 0 {
		query = query.Where("year = ?", filter.Year)
	}
	err = query.Offset(filter.Skip).Limit(filter.Limit).Order("payment_date DESC, id DESC").Find(&payments).Error
	if err != nil {
		payments = nil
	}
	return
}

func (db *DataBase) UpdatePayment(id uint, updates map[string]interface{}) (*models.Payment, error) {
	res := db.Model(&models.Payment{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected < 1 {
		return nil, fmt.Errorf("unknown payment %d: %w", id, gorm.ErrRecordNotFound)
	}
	return db.FindPaymentByID(id)
}

func (db *DataBase) DeletePayment(id uint) error {
	res := db.Delete(&models.Payment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected < 1 {
		return fmt.Errorf("unknown payment %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}
