package domain

import "time"

type EventKind string

const (
	EventNewBooking            EventKind = "booking_created"
	EventBookingCanceled       EventKind = "booking_canceled"
	EventBookingExpired        EventKind = "booking_expired"
	EventNoExpiredBookings     EventKind = "no_expired_bookings"
	EventNewAccommodation      EventKind = "accommodation_created"
	EventAccommodationReleased EventKind = "accommodation_released"
	EventPaymentSuccess        EventKind = "payment_success"
	EventPaymentCancelled      EventKind = "payment_cancelled"
)

// NotificationEvent is what travels over the notifications topic.
type NotificationEvent struct {
	ID   string    `json:"id"`
	Kind EventKind `json:"kind"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}
