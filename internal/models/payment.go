package models

import "time"

const (
	PaymentModeCash         = "cash"
	PaymentModeUPI          = "upi"
	PaymentModeBankTransfer = "bank_transfer"
	PaymentModeCard         = "card"
	PaymentModeCheque       = "cheque"
)

type PaymentMode = string

type Payment struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	PupilID     uint        `json:"pupil_id" gorm:"index"`
	Amount      string      `json:"amount" gorm:"type:decimal(10,2)"`
	Month       int         `json:"month"`
	Year        int         `json:"year"`
	PaymentDate time.Time   `json:"payment_date"`
	PaymentMode PaymentMode `json:"payment_mode" gorm:"size:16"`
	Reference   string      `json:"reference" gorm:"uniqueIndex;size:36"`
	Notes       *string     `json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}
