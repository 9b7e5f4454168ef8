package repository

import (
	"context"

	"github.com/Domenick1991/staybooking/internal/domain"
)

// Every read and write below carries notDeleted: soft-deleted rows are
// invisible to the rest of the system.
const (
	bookingColumns = `id, check_in_date, check_out_date, accommodation_id, user_id, status, is_deleted`
	notDeleted     = `is_deleted = FALSE`

	findExpiredQuery = `SELECT ` + bookingColumns + ` FROM bookings
		WHERE check_out_date <= $1 AND status <> $2 AND status <> $3 AND ` + notDeleted + `
		ORDER BY id`
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListByUserAndStatus(ctx context.Context, userID int64, status domain.BookingStatus) ([]domain.Booking, error)
	SoftDelete(ctx context.Context, id int64) error
	FindExpired(ctx context.Context, cutoff domain.Date) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db Querier
}

func NewBookingRepository(db Querier) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.db.QueryRow(ctx, `INSERT INTO bookings (check_in_date, check_out_date, accommodation_id, user_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`, booking.CheckInDate.Time, booking.CheckOutDate.Time, booking.AccommodationID, booking.UserID, booking.Status).
		Scan(&booking.ID)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1 AND `+notDeleted, id)
	b, err := scanBooking(row)
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

func (r *PGBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	cmd, err := r.db.Exec(ctx, `UPDATE bookings
		SET check_in_date=$1, check_out_date=$2, accommodation_id=$3, user_id=$4, status=$5
		WHERE id=$6 AND `+notDeleted,
		booking.CheckInDate.Time, booking.CheckOutDate.Time, booking.AccommodationID, booking.UserID, booking.Status, booking.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	cmd, err := r.db.Exec(ctx, `UPDATE bookings SET status=$1 WHERE id=$2 AND `+notDeleted, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 AND `+notDeleted+` ORDER BY check_in_date`, userID)
}

func (r *PGBookingRepository) ListByUserAndStatus(ctx context.Context, userID int64, status domain.BookingStatus) ([]domain.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 AND status=$2 AND `+notDeleted+` ORDER BY check_in_date`, userID, status)
}

// SoftDelete flags the row; it is never physically removed.
func (r *PGBookingRepository) SoftDelete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `UPDATE bookings SET is_deleted = TRUE WHERE id=$1 AND `+notDeleted, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindExpired returns live bookings checking out on or before cutoff that
// are neither canceled nor already expired.
func (r *PGBookingRepository) FindExpired(ctx context.Context, cutoff domain.Date) ([]domain.Booking, error) {
	return r.list(ctx, findExpiredQuery, cutoff.Time, domain.BookingStatusCanceled, domain.BookingStatusExpired)
}

func (r *PGBookingRepository) list(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.CheckInDate.Time, &b.CheckOutDate.Time, &b.AccommodationID, &b.UserID, &b.Status, &b.IsDeleted); err != nil {
		return nil, err
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
