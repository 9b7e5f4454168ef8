package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator checks request structs tagged with `validate`. Dates are
// compared as time.Time, so gtfield works between two domain.Date fields.
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

func New(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	val := &Validator{v: validator.New(validator.WithRequiredStructEnabled()), now: now}

	val.v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(domain.Date); ok {
			if d.IsZero() {
				return nil
			}
			return d.Time
		}
		return nil
	}, domain.Date{})
	val.v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	if err := val.v.RegisterValidation("future", val.future); err != nil {
		panic(fmt.Sprintf("register future validation: %v", err))
	}

	val.v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return val
}

// future accepts calendar days strictly after today.
func (val *Validator) future(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return domain.DateOf(t).After(domain.DateOf(val.now()).Time)
}

// Struct validates s and wraps failures in domain.ErrInvalidArgument.
func (val *Validator) Struct(s interface{}) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, message(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidArgument, strings.Join(msgs, "; "))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "future":
		return fe.Field() + " must be in the future"
	case "gtfield":
		return fe.Field() + " must be after " + lowerFirst(fe.Param())
	case "eqfield":
		return fe.Field() + " must match " + lowerFirst(fe.Param())
	case "email":
		return fe.Field() + " must be a valid email"
	case "min", "max", "gt", "gte":
		return fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
	case "oneof":
		return fe.Field() + " must be one of " + fe.Param()
	}
	return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
