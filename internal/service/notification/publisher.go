package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultPublishTimeout bounds the time a request spends queueing one event.
const DefaultPublishTimeout = 2 * time.Second

type EventProducer interface {
	PublishWithRetry(ctx context.Context, topic, key string, value interface{}, attempts int) error
}

// Publisher queues notification events on Kafka; the worker delivers them.
// Publish failures are logged and swallowed.
type Publisher struct {
	producer EventProducer
	topic    string
	attempts int
	timeout  time.Duration
	log      logrus.FieldLogger
	now      func() time.Time
}

type PublisherOption func(*Publisher)

func WithPublishAttempts(n int) PublisherOption {
	return func(p *Publisher) {
		if n > 0 {
			p.attempts = n
		}
	}
}

func WithPublishTimeout(d time.Duration) PublisherOption {
	return func(p *Publisher) {
		if d > 0 {
			p.timeout = d
		}
	}
}

func NewPublisher(producer EventProducer, topic string, log logrus.FieldLogger, opts ...PublisherOption) *Publisher {
	p := &Publisher{producer: producer, topic: topic, attempts: 1, timeout: DefaultPublishTimeout, log: log, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Publisher) NotifyNewBooking(ctx context.Context, b domain.Booking) {
	p.publish(ctx, domain.EventNewBooking, b)
}

func (p *Publisher) NotifyBookingCanceled(ctx context.Context, b domain.Booking) {
	p.publish(ctx, domain.EventBookingCanceled, b)
}

func (p *Publisher) NotifyBookingExpired(ctx context.Context, b domain.Booking) {
	p.publish(ctx, domain.EventBookingExpired, b)
}

func (p *Publisher) NotifyNoExpiredBookings(ctx context.Context) {
	p.publish(ctx, domain.EventNoExpiredBookings, nil)
}

func (p *Publisher) NotifyNewAccommodation(ctx context.Context, a domain.Accommodation) {
	p.publish(ctx, domain.EventNewAccommodation, a)
}

func (p *Publisher) NotifyAccommodationReleased(ctx context.Context, a domain.Accommodation) {
	p.publish(ctx, domain.EventAccommodationReleased, a)
}

func (p *Publisher) NotifyPaymentSuccess(ctx context.Context, pay domain.Payment) {
	p.publish(ctx, domain.EventPaymentSuccess, pay)
}

func (p *Publisher) NotifyPaymentCancelled(ctx context.Context, pay domain.Payment) {
	p.publish(ctx, domain.EventPaymentCancelled, pay)
}

func (p *Publisher) publish(ctx context.Context, kind domain.EventKind, subject fmt.Stringer) {
	event := domain.NotificationEvent{
		ID:   uuid.NewString(),
		Kind: kind,
		Text: Render(kind, subject),
		At:   p.now().UTC(),
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.producer.PublishWithRetry(ctx, p.topic, event.ID, event, p.attempts); err != nil {
		p.log.WithError(err).WithFields(logrus.Fields{"kind": kind, "event_id": event.ID}).Warn("failed to queue notification")
	}
}
