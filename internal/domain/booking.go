package domain

import (
	"fmt"
	"strings"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCanceled  BookingStatus = "CANCELED"
	BookingStatusExpired   BookingStatus = "EXPIRED"
)

var bookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCanceled,
	BookingStatusExpired,
}

// ParseBookingStatus matches s against the known statuses ignoring case.
func ParseBookingStatus(s string) (BookingStatus, error) {
	for _, status := range bookingStatuses {
		if strings.EqualFold(string(status), s) {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: invalid status: %s", ErrInvalidArgument, s)
}

type Booking struct {
	ID              int64
	CheckInDate     Date
	CheckOutDate    Date
	AccommodationID int64
	UserID          int64
	Status          BookingStatus
	IsDeleted       bool
}

// Nights is the number of nights between check-in and check-out.
func (b Booking) Nights() int64 {
	return b.CheckInDate.DaysUntil(b.CheckOutDate)
}

func (b Booking) String() string {
	return fmt.Sprintf("booking #%d: accommodation %d, user %d, from %s to %s, status %s",
		b.ID, b.AccommodationID, b.UserID, b.CheckInDate, b.CheckOutDate, b.Status)
}
