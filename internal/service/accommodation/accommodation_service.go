package accommodation

import (
	"context"
	"fmt"
	"math"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/repository"
	"github.com/sirupsen/logrus"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxOffset keeps page*size inside a postgres int4 OFFSET.
	MaxOffset = math.MaxInt32
)

type AccommodationUseCase interface {
	Create(ctx context.Context, a domain.Accommodation) (*domain.Accommodation, error)
	List(ctx context.Context, page, size int) ([]domain.Accommodation, error)
	GetByID(ctx context.Context, id int64) (*domain.Accommodation, error)
	Update(ctx context.Context, id int64, a domain.Accommodation) (*domain.Accommodation, error)
	Delete(ctx context.Context, id int64) error
}

type Notifier interface {
	NotifyNewAccommodation(ctx context.Context, a domain.Accommodation)
	NotifyAccommodationReleased(ctx context.Context, a domain.Accommodation)
}

type AccommodationService struct {
	repo     repository.AccommodationRepository
	notifier Notifier
	log      logrus.FieldLogger
}

func NewAccommodationService(repo repository.AccommodationRepository, notifier Notifier, log logrus.FieldLogger) *AccommodationService {
	return &AccommodationService{repo: repo, notifier: notifier, log: log}
}

func (s *AccommodationService) Create(ctx context.Context, a domain.Accommodation) (*domain.Accommodation, error) {
	if err := validate(a); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &a); err != nil {
		return nil, fmt.Errorf("can't save accommodation: %w", err)
	}
	s.log.WithField("accommodation_id", a.ID).Info("accommodation created")

	s.notifier.NotifyNewAccommodation(ctx, a)
	return &a, nil
}

// List returns one zero-based page. Out of range sizes fall back to the
// default or are capped; a page past MaxOffset is rejected.
func (s *AccommodationService) List(ctx context.Context, page, size int) ([]domain.Accommodation, error) {
	if page < 0 {
		page = 0
	}
	switch {
	case size <= 0:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}
	if page > MaxOffset/size {
		return nil, fmt.Errorf("%w: page %d is too large", domain.ErrInvalidArgument, page)
	}
	return s.repo.List(ctx, size, page*size)
}

func (s *AccommodationService) GetByID(ctx context.Context, id int64) (*domain.Accommodation, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("can't get accommodation by id %d: %w", id, err)
	}
	return a, nil
}

func (s *AccommodationService) Update(ctx context.Context, id int64, a domain.Accommodation) (*domain.Accommodation, error) {
	if err := validate(a); err != nil {
		return nil, err
	}
	a.ID = id
	if err := s.repo.Update(ctx, &a); err != nil {
		return nil, fmt.Errorf("can't update accommodation %d: %w", id, err)
	}
	return &a, nil
}

// Delete removes an existing accommodation and announces it as released.
func (s *AccommodationService) Delete(ctx context.Context, id int64) error {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("can't delete accommodation %d: %w", id, err)
	}

	s.notifier.NotifyAccommodationReleased(ctx, *a)
	return nil
}

func validate(a domain.Accommodation) error {
	if !a.Type.Valid() {
		return fmt.Errorf("%w: unknown accommodation type %q", domain.ErrInvalidArgument, a.Type)
	}
	if !a.DailyRate.IsPositive() {
		return fmt.Errorf("%w: daily rate must be positive", domain.ErrInvalidArgument)
	}
	if a.Availability < 0 {
		return fmt.Errorf("%w: availability must not be negative", domain.ErrInvalidArgument)
	}
	return nil
}

var _ AccommodationUseCase = (*AccommodationService)(nil)
