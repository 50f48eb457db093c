package booking

import "errors"

var (
	ErrValidation          = errors.New("invalid ticket count")
	ErrEventNotFound       = errors.New("event not found")
	ErrInsufficientTickets = errors.New("not enough tickets available")
	ErrMissingParameters   = errors.New("missing payment parameters")
	ErrInvalidSignature    = errors.New("invalid payment signature")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrForbidden           = errors.New("not authorized to view this booking")
)
