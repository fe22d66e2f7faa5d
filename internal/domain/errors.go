package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyOrderID       = errors.New("order id is empty")
	ErrStaleOrderID       = errors.New("order id was already replaced")
	ErrInvalidTransition  = errors.New("invalid phase transition")
	ErrAlreadyInitialized = errors.New("booking session already initialized")
	ErrSessionNotReady    = errors.New("booking session has no item id")
	ErrPayNowUnavailable  = errors.New("pay now is not offered for this rate")
	ErrInvalidRoster      = errors.New("invalid guest roster")
	ErrInvalidCard        = errors.New("invalid card details")
	ErrSessionNotFound    = errors.New("booking session not found")
	ErrMissingOrderID     = errors.New("return url carries no partner order id")
)

// FieldError is a recoverable card failure tied to one form field.
type FieldError struct {
	Field   CardField
	Code    SupplierCode
	Message string
}

func (e *FieldError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Code)
}

// BookingError is a user-facing failure. Phase is where the session ended up.
type BookingError struct {
	Phase     Phase
	Code      SupplierCode
	Notice    Notice
	Title     string
	Text      string
	Reference string
	Err       error
}

func (e *BookingError) Error() string {
	msg := e.Title
	if e.Text != "" {
		msg += ": " + e.Text
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *BookingError) Unwrap() error {
	return e.Err
}

// Recoverable reports whether the user may retry from the form.
func (e *BookingError) Recoverable() bool {
	return e.Phase == PhaseForm
}
