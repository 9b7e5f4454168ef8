package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/shopspring/decimal"
)

const accommodationColumns = `id, type, location, size, amenities, daily_rate::text, availability`

type AccommodationRepository interface {
	Create(ctx context.Context, accommodation *domain.Accommodation) error
	GetByID(ctx context.Context, id int64) (*domain.Accommodation, error)
	List(ctx context.Context, limit, offset int) ([]domain.Accommodation, error)
	Update(ctx context.Context, accommodation *domain.Accommodation) error
	Delete(ctx context.Context, id int64) error
}

type PGAccommodationRepository struct {
	db Querier
}

func NewAccommodationRepository(db Querier) AccommodationRepository {
	return &PGAccommodationRepository{db: db}
}

func (r *PGAccommodationRepository) Create(ctx context.Context, a *domain.Accommodation) error {
	return r.db.QueryRow(ctx, `INSERT INTO accommodations (type, location, size, amenities, daily_rate, availability)
		VALUES ($1, $2, $3, $4, $5::numeric, $6)
		RETURNING id`, a.Type, a.Location, a.Size, amenities(a.Amenities), a.DailyRate.String(), a.Availability).
		Scan(&a.ID)
}

func (r *PGAccommodationRepository) GetByID(ctx context.Context, id int64) (*domain.Accommodation, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accommodationColumns+` FROM accommodations WHERE id=$1`, id)
	a, err := scanAccommodation(row)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (r *PGAccommodationRepository) List(ctx context.Context, limit, offset int) ([]domain.Accommodation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+accommodationColumns+` FROM accommodations ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]domain.Accommodation, 0)
	for rows.Next() {
		a, err := scanAccommodation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *a)
	}
	return list, rows.Err()
}

func (r *PGAccommodationRepository) Update(ctx context.Context, a *domain.Accommodation) error {
	cmd, err := r.db.Exec(ctx, `UPDATE accommodations
		SET type=$1, location=$2, size=$3, amenities=$4, daily_rate=$5::numeric, availability=$6
		WHERE id=$7`, a.Type, a.Location, a.Size, amenities(a.Amenities), a.DailyRate.String(), a.Availability, a.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGAccommodationRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM accommodations WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanAccommodation(row rowScanner) (*domain.Accommodation, error) {
	var (
		a    domain.Accommodation
		rate string
	)
	if err := row.Scan(&a.ID, &a.Type, &a.Location, &a.Size, &a.Amenities, &rate, &a.Availability); err != nil {
		return nil, err
	}
	parsed, err := decimal.NewFromString(rate)
	if err != nil {
		return nil, fmt.Errorf("parse daily rate %q: %w", rate, err)
	}
	a.DailyRate = parsed
	return &a, nil
}

// amenities keeps NOT NULL happy when the list is empty.
func amenities(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

var _ AccommodationRepository = (*PGAccommodationRepository)(nil)
