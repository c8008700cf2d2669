package entities

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusSuccess  PaymentStatus = "success"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusSuccess, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

type Payment struct {
	PaymentID uuid.UUID     `json:"payment_id" db:"payment_id"`
	BookingID uuid.UUID     `json:"booking_id" db:"booking_id"`
	Amount    Money         `json:"amount" db:"amount"`
	Method    string        `json:"method" db:"method"`
	Status    PaymentStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
}

func (p Payment) IsSuccess() bool {
	return p.Status == PaymentStatusSuccess
}
