package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/shopspring/decimal"
)

const paymentColumns = `p.id, p.status, p.booking_id, p.session_id, p.session_url, p.amount::text`

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	GetBySessionID(ctx context.Context, sessionID string) (*domain.Payment, error)
	ListByUserID(ctx context.Context, userID int64) ([]domain.Payment, error)
	// UpdateStatus moves a PENDING payment to status. A payment that is no
	// longer PENDING is left as is and ErrPaymentFinalized is returned.
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
}

type PGPaymentRepository struct {
	db Querier
}

func NewPaymentRepository(db Querier) PaymentRepository {
	return &PGPaymentRepository{db: db}
}

func (r *PGPaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.QueryRow(ctx, `INSERT INTO payments (status, booking_id, session_id, session_url, amount)
		VALUES ($1, $2, $3, $4, $5::numeric)
		RETURNING id`, p.Status, p.BookingID, p.SessionID, p.SessionURL, p.Amount.String()).
		Scan(&p.ID)
}

func (r *PGPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	row := r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments p WHERE p.id=$1`, id)
	p, err := scanPayment(row)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (r *PGPaymentRepository) GetBySessionID(ctx context.Context, sessionID string) (*domain.Payment, error) {
	row := r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments p WHERE p.session_id=$1`, sessionID)
	p, err := scanPayment(row)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (r *PGPaymentRepository) ListByUserID(ctx context.Context, userID int64) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx, `SELECT `+paymentColumns+` FROM payments p
		JOIN bookings b ON b.id = p.booking_id
		WHERE b.user_id=$1
		ORDER BY p.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func (r *PGPaymentRepository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	cmd, err := r.db.Exec(ctx, `UPDATE payments SET status=$1 WHERE id=$2 AND status=$3`, status, id, domain.PaymentStatusPending)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("payment %d is no longer pending: %w", id, domain.ErrPaymentFinalized)
	}
	return nil
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var (
		p      domain.Payment
		amount string
	)
	if err := row.Scan(&p.ID, &p.Status, &p.BookingID, &p.SessionID, &p.SessionURL, &amount); err != nil {
		return nil, err
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse payment amount %q: %w", amount, err)
	}
	p.Amount = parsed
	return &p, nil
}

var _ PaymentRepository = (*PGPaymentRepository)(nil)
