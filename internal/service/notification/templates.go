package notification

import (
	"fmt"

	"github.com/Domenick1991/staybooking/internal/domain"
)

const noExpiredBookingsText = "No expired bookings today!"

var templates = map[domain.EventKind]string{
	domain.EventNewBooking:            "New booking created:\n%s",
	domain.EventBookingCanceled:       "Booking canceled:\n%s",
	domain.EventBookingExpired:        "Booking expired: %s",
	domain.EventNewAccommodation:      "New accommodation created:\n%s",
	domain.EventAccommodationReleased: "Accommodation released:\n%s",
	domain.EventPaymentSuccess:        "Payment successful:\n%s",
	domain.EventPaymentCancelled:      "Payment cancelled:\n%s",
}

// Render turns an event kind and its subject into the broadcast text.
func Render(kind domain.EventKind, subject fmt.Stringer) string {
	if kind == domain.EventNoExpiredBookings {
		return noExpiredBookingsText
	}
	tpl, ok := templates[kind]
	if !ok {
		return fmt.Sprintf("%s:\n%s", kind, subject)
	}
	return fmt.Sprintf(tpl, subject)
}
