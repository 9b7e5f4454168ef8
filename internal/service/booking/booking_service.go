package booking

import (
	"context"
	"fmt"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/repository"
	"github.com/sirupsen/logrus"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, id int64, input UpdateBookingInput) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListByUserAndStatus(ctx context.Context, userID int64, status string) ([]domain.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
}

type Notifier interface {
	NotifyNewBooking(ctx context.Context, b domain.Booking)
	NotifyBookingCanceled(ctx context.Context, b domain.Booking)
}

type BookingService struct {
	bookings repository.BookingRepository
	notifier Notifier
	log      logrus.FieldLogger
}

type CreateBookingInput struct {
	CheckInDate     domain.Date
	CheckOutDate    domain.Date
	AccommodationID int64
	UserID          int64
}

// UpdateBookingInput carries a partial update; nil fields keep their
// stored value.
type UpdateBookingInput struct {
	CheckInDate     *domain.Date
	CheckOutDate    *domain.Date
	AccommodationID *int64
	UserID          *int64
	Status          *domain.BookingStatus
}

func NewBookingService(bookings repository.BookingRepository, notifier Notifier, log logrus.FieldLogger) *BookingService {
	return &BookingService{
		bookings: bookings,
		notifier: notifier,
		log:      log,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	booking := &domain.Booking{
		CheckInDate:     input.CheckInDate,
		CheckOutDate:    input.CheckOutDate,
		AccommodationID: input.AccommodationID,
		UserID:          input.UserID,
		Status:          domain.BookingStatusPending,
	}
	if err := checkDates(booking); err != nil {
		return nil, err
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("can't save booking: %w", err)
	}
	s.log.WithFields(logrus.Fields{"booking_id": booking.ID, "user_id": booking.UserID}).Info("booking created")

	s.notifier.NotifyNewBooking(ctx, *booking)
	return booking, nil
}

func (s *BookingService) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("can't get booking by id %d: %w", id, err)
	}
	return booking, nil
}

// UpdateBooking merges input into the stored booking and saves it once.
// A booking that ends up CANCELED emits a cancellation notice.
func (s *BookingService) UpdateBooking(ctx context.Context, id int64, input UpdateBookingInput) (*domain.Booking, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CheckInDate != nil {
		booking.CheckInDate = *input.CheckInDate
	}
	if input.CheckOutDate != nil {
		booking.CheckOutDate = *input.CheckOutDate
	}
	if input.AccommodationID != nil {
		booking.AccommodationID = *input.AccommodationID
	}
	if input.UserID != nil {
		booking.UserID = *input.UserID
	}
	if input.Status != nil {
		booking.Status = *input.Status
	}
	if err := checkDates(booking); err != nil {
		return nil, err
	}

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("can't update booking %d: %w", id, err)
	}

	if booking.Status == domain.BookingStatusCanceled {
		s.notifier.NotifyBookingCanceled(ctx, *booking)
	}
	return booking, nil
}

func (s *BookingService) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// ListByUserAndStatus accepts the status as free text, matched ignoring case.
func (s *BookingService) ListByUserAndStatus(ctx context.Context, userID int64, status string) ([]domain.Booking, error) {
	parsed, err := domain.ParseBookingStatus(status)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListByUserAndStatus(ctx, userID, parsed)
}

func (s *BookingService) DeleteBooking(ctx context.Context, id int64) error {
	if err := s.bookings.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("can't delete booking %d: %w", id, err)
	}
	return nil
}

func checkDates(b *domain.Booking) error {
	if !b.CheckOutDate.After(b.CheckInDate.Time) {
		return fmt.Errorf("%w: check-out date must be after check-in date", domain.ErrInvalidArgument)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
