package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// CheckoutRequest describes a single line item hosted checkout.
type CheckoutRequest struct {
	Title      string
	Amount     decimal.Decimal
	SuccessURL string
	CancelURL  string
}

type Session struct {
	ID   string
	URL  string
	Paid bool
}

// Gateway is the payment provider's hosted checkout API.
type Gateway interface {
	CreateSession(ctx context.Context, req CheckoutRequest) (*Session, error)
	GetSession(ctx context.Context, sessionID string) (*Session, error)
}

type Notifier interface {
	NotifyPaymentSuccess(ctx context.Context, p domain.Payment)
	NotifyPaymentCancelled(ctx context.Context, p domain.Payment)
}

type PaymentUseCase interface {
	CreatePayment(ctx context.Context, bookingID int64) (*domain.Payment, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error)
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	HandleSuccess(ctx context.Context, sessionID string) (*domain.Payment, error)
	HandleCancel(ctx context.Context, sessionID string) (*domain.Payment, error)
}

type PaymentService struct {
	payments       repository.PaymentRepository
	bookings       repository.BookingRepository
	accommodations repository.AccommodationRepository
	gateway        Gateway
	notifier       Notifier
	baseURL        string
	log            logrus.FieldLogger
}

func NewPaymentService(
	payments repository.PaymentRepository,
	bookings repository.BookingRepository,
	accommodations repository.AccommodationRepository,
	gateway Gateway,
	notifier Notifier,
	baseURL string,
	log logrus.FieldLogger,
) *PaymentService {
	return &PaymentService{
		payments:       payments,
		bookings:       bookings,
		accommodations: accommodations,
		gateway:        gateway,
		notifier:       notifier,
		baseURL:        strings.TrimRight(baseURL, "/"),
		log:            log,
	}
}

// Amount is dailyRate times the number of nights, in exact decimal.
func Amount(dailyRate decimal.Decimal, b domain.Booking) decimal.Decimal {
	return dailyRate.Mul(decimal.NewFromInt(b.Nights()))
}

func Title(a domain.Accommodation, b domain.Booking) string {
	return fmt.Sprintf("BOOKING %s FROM %s TO %s", a.Location, b.CheckInDate, b.CheckOutDate)
}

// CreatePayment opens a checkout session for the booking and stores a
// PENDING payment carrying the session id and URL.
func (s *PaymentService) CreatePayment(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("can't get booking by id %d: %w", bookingID, err)
	}
	a, err := s.accommodations.GetByID(ctx, b.AccommodationID)
	if err != nil {
		return nil, fmt.Errorf("can't get accommodation by id %d: %w", b.AccommodationID, err)
	}

	amount := Amount(a.DailyRate, *b)
	session, err := s.gateway.CreateSession(ctx, CheckoutRequest{
		Title:      Title(*a, *b),
		Amount:     amount,
		SuccessURL: s.redirectURL("success"),
		CancelURL:  s.redirectURL("cancel"),
	})
	if err != nil {
		return nil, err
	}

	p := &domain.Payment{
		Status:     domain.PaymentStatusPending,
		BookingID:  b.ID,
		SessionID:  session.ID,
		SessionURL: session.URL,
		Amount:     amount,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("can't save payment for booking %d: %w", b.ID, err)
	}
	s.log.WithFields(logrus.Fields{"payment_id": p.ID, "booking_id": b.ID, "amount": amount.StringFixed(2)}).Info("payment session created")
	return p, nil
}

func (s *PaymentService) ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error) {
	return s.payments.ListByUserID(ctx, userID)
}

func (s *PaymentService) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("can't get payment by id %d: %w", id, err)
	}
	return p, nil
}

// HandleSuccess marks the payment PAID and confirms its booking once the
// provider reports the session as paid.
func (s *PaymentService) HandleSuccess(ctx context.Context, sessionID string) (*domain.Payment, error) {
	p, err := s.pendingBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session, err := s.gateway.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Paid {
		return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrPaymentNotCompleted)
	}

	if err := s.payments.UpdateStatus(ctx, p.ID, domain.PaymentStatusPaid); err != nil {
		return nil, fmt.Errorf("can't update payment %d: %w", p.ID, err)
	}
	p.Status = domain.PaymentStatusPaid

	if err := s.bookings.UpdateStatus(ctx, p.BookingID, domain.BookingStatusConfirmed); err != nil {
		s.log.WithError(err).WithField("booking_id", p.BookingID).Error("failed to confirm paid booking")
	}

	s.notifier.NotifyPaymentSuccess(ctx, *p)
	return p, nil
}

func (s *PaymentService) HandleCancel(ctx context.Context, sessionID string) (*domain.Payment, error) {
	p, err := s.pendingBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.payments.UpdateStatus(ctx, p.ID, domain.PaymentStatusCancelled); err != nil {
		return nil, fmt.Errorf("can't update payment %d: %w", p.ID, err)
	}
	p.Status = domain.PaymentStatusCancelled

	s.notifier.NotifyPaymentCancelled(ctx, *p)
	return p, nil
}

func (s *PaymentService) pendingBySession(ctx context.Context, sessionID string) (*domain.Payment, error) {
	p, err := s.payments.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("can't get payment by session id %s: %w", sessionID, err)
	}
	if p.Status.Terminal() {
		return nil, fmt.Errorf("payment %d is %s: %w", p.ID, p.Status, domain.ErrPaymentFinalized)
	}
	return p, nil
}

func (s *PaymentService) redirectURL(outcome string) string {
	return s.baseURL + "/payments/" + outcome + "?sessionId={CHECKOUT_SESSION_ID}"
}

var _ PaymentUseCase = (*PaymentService)(nil)
