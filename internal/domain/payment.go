package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusPaid      PaymentStatus = "PAID"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusPaid || s == PaymentStatusCancelled
}

type Payment struct {
	ID         int64
	Status     PaymentStatus
	BookingID  int64
	SessionID  string
	SessionURL string
	Amount     decimal.Decimal
}

func (p Payment) String() string {
	return fmt.Sprintf("payment #%d: booking %d, amount %s, status %s, session %s",
		p.ID, p.BookingID, p.Amount.StringFixed(2), p.Status, p.SessionID)
}
