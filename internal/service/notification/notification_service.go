package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/repository"
	"github.com/sirupsen/logrus"
)

type SubscriberStore interface {
	Add(ctx context.Context, chatID int64) (bool, error)
	Remove(ctx context.Context, chatID int64) (bool, error)
	List(ctx context.Context) ([]int64, error)
}

type Messenger interface {
	Send(ctx context.Context, chatID int64, text string) error
}

type ExpiryNotifier interface {
	NotifyBookingExpired(ctx context.Context, b domain.Booking)
	NotifyNoExpiredBookings(ctx context.Context)
}

type NotificationUseCase interface {
	Subscribe(ctx context.Context, chatID int64) (bool, error)
	Unsubscribe(ctx context.Context, chatID int64) (bool, error)
	Broadcast(ctx context.Context, message string) error
	HandleEvent(ctx context.Context, payload []byte) error
	ExpireOverdueBookings(ctx context.Context) (int, error)
	RunExpirySweep(ctx context.Context) error
}

type Service struct {
	subscribers   SubscriberStore
	messenger     Messenger
	bookings      repository.BookingRepository
	notifier      ExpiryNotifier
	log           logrus.FieldLogger
	now           func() time.Time
	retryAttempts int
	retryDelay    time.Duration
}

type ServiceOption func(*Service)

func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// WithRetry sets how many times event dispatch and the expiry sweep are
// attempted, and the base delay between attempts.
func WithRetry(attempts int, delay time.Duration) ServiceOption {
	return func(s *Service) {
		if attempts > 0 {
			s.retryAttempts = attempts
		}
		s.retryDelay = delay
	}
}

func NewService(
	subscribers SubscriberStore,
	messenger Messenger,
	bookings repository.BookingRepository,
	notifier ExpiryNotifier,
	log logrus.FieldLogger,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		subscribers:   subscribers,
		messenger:     messenger,
		bookings:      bookings,
		notifier:      notifier,
		log:           log,
		now:           time.Now,
		retryAttempts: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Subscribe(ctx context.Context, chatID int64) (bool, error) {
	return s.subscribers.Add(ctx, chatID)
}

func (s *Service) Unsubscribe(ctx context.Context, chatID int64) (bool, error) {
	return s.subscribers.Remove(ctx, chatID)
}

// Broadcast sends message to every subscriber. A failed recipient is
// logged and skipped; only failing to load the subscriber set is an error.
func (s *Service) Broadcast(ctx context.Context, message string) error {
	chatIDs, err := s.subscribers.List(ctx)
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}

	failed := 0
	for _, chatID := range chatIDs {
		if err := s.messenger.Send(ctx, chatID, message); err != nil {
			failed++
			s.log.WithError(err).WithField("chat_id", chatID).Warn("notification delivery failed")
		}
	}
	if failed > 0 {
		s.log.WithFields(logrus.Fields{"failed": failed, "total": len(chatIDs)}).Warn("broadcast finished with failures")
	}
	return nil
}

// HandleEvent decodes a queued event and broadcasts it, retrying the
// broadcast as configured. Undecodable or undeliverable events are logged
// and dropped so the consumer can move on.
func (s *Service) HandleEvent(ctx context.Context, payload []byte) error {
	var event domain.NotificationEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		s.log.WithError(err).Error("decode notification event")
		return nil
	}

	err := s.retry(ctx, func() error { return s.Broadcast(ctx, event.Text) })
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		s.log.WithError(err).WithFields(logrus.Fields{"event_id": event.ID, "kind": event.Kind}).Error("dropping notification event")
	}
	return nil
}

// ExpireOverdueBookings marks every live booking that checks out by
// tomorrow as EXPIRED. Each booking is its own update; the sweep reports
// how many were expired and joins per-booking failures.
func (s *Service) ExpireOverdueBookings(ctx context.Context) (int, error) {
	cutoff := domain.DateOf(s.now()).AddDays(1)

	overdue, err := s.bookings.FindExpired(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("find expired bookings: %w", err)
	}
	if len(overdue) == 0 {
		s.notifier.NotifyNoExpiredBookings(ctx)
		return 0, nil
	}

	var errs []error
	expired := 0
	for _, b := range overdue {
		if err := s.bookings.UpdateStatus(ctx, b.ID, domain.BookingStatusExpired); err != nil {
			errs = append(errs, fmt.Errorf("expire booking %d: %w", b.ID, err))
			continue
		}
		b.Status = domain.BookingStatusExpired
		expired++
		s.notifier.NotifyBookingExpired(ctx, b)
	}
	return expired, errors.Join(errs...)
}

// RunExpirySweep is the scheduled entry point.
func (s *Service) RunExpirySweep(ctx context.Context) error {
	return s.retry(ctx, func() error {
		expired, err := s.ExpireOverdueBookings(ctx)
		if expired > 0 {
			s.log.WithField("expired", expired).Info("expired bookings")
		}
		return err
	})
}

func (s *Service) retry(ctx context.Context, fn func() error) error {
	var lastErr error
	for i := 0; i < s.retryAttempts; i++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		s.log.WithError(lastErr).WithField("attempt", i+1).Warn("attempt failed")

		if i < s.retryAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(i+1) * s.retryDelay):
			}
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", s.retryAttempts, lastErr)
}

var _ NotificationUseCase = (*Service)(nil)
