package validation

import (
	"testing"
	"time"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type stay struct {
	CheckInDate  domain.Date `json:"checkInDate" validate:"required,future"`
	CheckOutDate domain.Date `json:"checkOutDate" validate:"required,future,gtfield=CheckInDate"`
}

type patch struct {
	CheckInDate *domain.Date `json:"checkInDate" validate:"omitempty,future"`
}

type signup struct {
	Password       string `json:"password" validate:"required,min=8,max=32"`
	RepeatPassword string `json:"repeatPassword" validate:"required,eqfield=Password"`
}

type priced struct {
	DailyRate decimal.Decimal `json:"dailyRate" validate:"gt=0"`
}

var today = time.Date(2024, 8, 10, 15, 30, 0, 0, time.UTC)

func newValidator() *Validator {
	return New(func() time.Time { return today })
}

func TestNew_RegistersCustomRules(t *testing.T) {
	var v *Validator
	assert.NotPanics(t, func() { v = New(nil) })
	assert.NotNil(t, v)
}

func TestValidator_FutureDates(t *testing.T) {
	v := newValidator()

	assert.NoError(t, v.Struct(stay{CheckInDate: domain.NewDate(2024, 8, 17), CheckOutDate: domain.NewDate(2024, 8, 26)}))

	err := v.Struct(stay{CheckInDate: domain.NewDate(2024, 8, 10), CheckOutDate: domain.NewDate(2024, 8, 26)})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.ErrorContains(t, err, "checkInDate must be in the future")
}

func TestValidator_CheckOutMustFollowCheckIn(t *testing.T) {
	v := newValidator()

	err := v.Struct(stay{CheckInDate: domain.NewDate(2024, 8, 20), CheckOutDate: domain.NewDate(2024, 8, 20)})
	assert.ErrorContains(t, err, "checkOutDate must be after checkInDate")

	err = v.Struct(stay{CheckInDate: domain.NewDate(2024, 8, 20), CheckOutDate: domain.NewDate(2024, 8, 19)})
	assert.ErrorContains(t, err, "checkOutDate must be after checkInDate")
}

func TestValidator_RequiredDate(t *testing.T) {
	err := newValidator().Struct(stay{CheckOutDate: domain.NewDate(2024, 8, 20)})
	assert.ErrorContains(t, err, "checkInDate is required")
}

func TestValidator_OptionalPointerDate(t *testing.T) {
	v := newValidator()
	past := domain.NewDate(2024, 1, 1)

	assert.NoError(t, v.Struct(patch{}))
	assert.ErrorContains(t, v.Struct(patch{CheckInDate: &past}), "must be in the future")
}

func TestValidator_PasswordsMatch(t *testing.T) {
	v := newValidator()

	assert.NoError(t, v.Struct(signup{Password: "longenough", RepeatPassword: "longenough"}))
	assert.ErrorContains(t, v.Struct(signup{Password: "longenough", RepeatPassword: "different"}), "repeatPassword must match password")
	assert.ErrorContains(t, v.Struct(signup{Password: "short", RepeatPassword: "short"}), "password must satisfy min=8")
}

func TestValidator_PositiveDecimal(t *testing.T) {
	v := newValidator()

	assert.NoError(t, v.Struct(priced{DailyRate: decimal.RequireFromString("123.45")}))
	assert.Error(t, v.Struct(priced{DailyRate: decimal.Zero}))
}
