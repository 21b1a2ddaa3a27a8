package api

import (
	"time"

	"github.com/tutorlog/tutorlog/internal/models"
)

type CreatePaymentRequest struct {
	PupilID     uint      `json:"pupil_id" binding:"required"`
	Amount      string    `json:"amount" binding:"required"`
	Month       int       `json:"month" binding:"required,min=1,max=12"`
	Year        int       `json:"year" binding:"required,min=1900"`
	PaymentDate time.Time `json:"payment_date" binding:"required"`
	PaymentMode string    `json:"payment_mode" binding:"required,oneof=cash upi bank_transfer card cheque"`
	Notes       *string   `json:"notes"`
}

type UpdatePaymentRequest struct {
	Amount      *string    `json:"amount"`
	Month       *int       `json:"month" binding:"omitempty,min=1,max=12"`
	Year        *int       `json:"year" binding:"omitempty,min=1900"`
	PaymentDate *time.Time `json:"payment_date"`
	PaymentMode *string    `json:"payment_mode" binding:"omitempty,oneof=cash upi bank_transfer card cheque"`
	Notes       *string    `json:"notes"`
}

type PaymentResponse struct {
	Status
	Payment *models.Payment `json:"payment,omitempty"`
}

type PaymentsResponse struct {
	Status
	Payments []models.Payment `json:"payments,omitempty"`
}
