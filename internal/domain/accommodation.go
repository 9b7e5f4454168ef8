package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type AccommodationType string

const (
	AccommodationTypeHouse        AccommodationType = "HOUSE"
	AccommodationTypeApartment    AccommodationType = "APARTMENT"
	AccommodationTypeCondo        AccommodationType = "CONDO"
	AccommodationTypeVacationHome AccommodationType = "VACATION_HOME"
)

func (t AccommodationType) Valid() bool {
	switch t {
	case AccommodationTypeHouse, AccommodationTypeApartment, AccommodationTypeCondo, AccommodationTypeVacationHome:
		return true
	}
	return false
}

type Accommodation struct {
	ID           int64
	Type         AccommodationType
	Location     string
	Size         string
	Amenities    []string
	DailyRate    decimal.Decimal
	Availability int
}

func (a Accommodation) String() string {
	return fmt.Sprintf("accommodation #%d: %s in %s, %s, amenities [%s], %s per day, %d available",
		a.ID, a.Type, a.Location, a.Size, strings.Join(a.Amenities, ", "), a.DailyRate.StringFixed(2), a.Availability)
}
