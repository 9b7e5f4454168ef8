package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrConfiguration       = errors.New("configuration error")
	ErrPaymentFinalized    = errors.New("payment is already finalized")
	ErrPaymentNotCompleted = errors.New("payment is not completed by provider")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrPaymentProvider     = errors.New("payment provider error")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
