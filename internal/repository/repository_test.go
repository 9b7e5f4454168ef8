package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewRepositories(t *testing.T) {
	pool := &pgxpool.Pool{}
	assert.NotNil(t, NewAccommodationRepository(pool))
	assert.NotNil(t, NewPaymentRepository(pool))
	assert.NotNil(t, NewUserRepository(pool))
	assert.NotNil(t, NewRoleRepository(pool))
}

func TestNotFound(t *testing.T) {
	assert.ErrorIs(t, notFound(pgx.ErrNoRows), domain.ErrNotFound)
	assert.ErrorIs(t, notFound(fmt.Errorf("wrapped: %w", pgx.ErrNoRows)), domain.ErrNotFound)

	other := errors.New("connection reset")
	assert.Equal(t, other, notFound(other))
}

func TestAmenitiesNeverNil(t *testing.T) {
	assert.Equal(t, []string{}, amenities(nil))
	assert.Equal(t, []string{"wifi"}, amenities([]string{"wifi"}))
}

type fakeRow struct {
	values []any
}

func (r fakeRow) Scan(dest ...any) error {
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case *int:
			*p = r.values[i].(int)
		case *string:
			*p = r.values[i].(string)
		case *domain.AccommodationType:
			*p = r.values[i].(domain.AccommodationType)
		case *domain.PaymentStatus:
			*p = r.values[i].(domain.PaymentStatus)
		case *[]string:
			*p = r.values[i].([]string)
		}
	}
	return nil
}

func TestScanAccommodationParsesDecimal(t *testing.T) {
	row := fakeRow{values: []any{int64(1), domain.AccommodationTypeHouse, "Kyiv", "2 bedrooms", []string{"wifi"}, "123.50", 3}}

	a, err := scanAccommodation(row)
	assert.NoError(t, err)
	assert.Equal(t, "123.5", a.DailyRate.String())
	assert.Equal(t, "Kyiv", a.Location)
}

func TestScanPaymentRejectsBadAmount(t *testing.T) {
	row := fakeRow{values: []any{int64(1), domain.PaymentStatusPending, int64(2), "cs_1", "https://pay", "abc"}}

	_, err := scanPayment(row)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse payment amount")
}

func TestPaymentUpdateStatus_GuardsPending(t *testing.T) {
	q := &recordingQuerier{tag: pgconn.NewCommandTag("UPDATE 1")}
	repo := NewPaymentRepository(q)

	err := repo.UpdateStatus(context.Background(), 5, domain.PaymentStatusPaid)

	assert.NoError(t, err)
	assert.Contains(t, q.sql, "AND status=$3")
	assert.Equal(t, []any{domain.PaymentStatusPaid, int64(5), domain.PaymentStatusPending}, q.args)
}

func TestPaymentUpdateStatus_FinalizedWhenNothingChanged(t *testing.T) {
	q := &recordingQuerier{tag: pgconn.NewCommandTag("UPDATE 0")}
	repo := NewPaymentRepository(q)

	err := repo.UpdateStatus(context.Background(), 5, domain.PaymentStatusCancelled)

	assert.ErrorIs(t, err, domain.ErrPaymentFinalized)
}
