package service

import (
	"errors"
	"fmt"

	"github.com/Eursukkul/sports-club-service/internal/pricing"
)

// ErrValidation is shared with the pricing package so callers only need one
// errors.Is check for bad input.
var ErrValidation = pricing.ErrValidation

var (
	ErrPatronNotFound       = errors.New("patron not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrAlreadyPaid          = errors.New("payment already recorded")

	ErrReferenceConflict  = errors.New("payment reference already in use")
	ErrReferenceExhausted = errors.New("could not allocate a unique payment reference")

	ErrStaffNotPriced       = fmt.Errorf("%w: staff accounts cannot book courts or hold memberships", ErrValidation)
	ErrInvalidPaymentMethod = fmt.Errorf("%w: payment method must be one of cash, gcash", ErrValidation)
	ErrPlanTypeRequired     = fmt.Errorf("%w: plan type is required", ErrValidation)
	ErrBookingDateRequired  = fmt.Errorf("%w: booking date is required", ErrValidation)
)

func invalidField(field string, err error) error {
	return &pricing.ValidationError{Field: field, Message: err.Error()}
}
