package event

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("event not found")
	ErrNotHost    = errors.New("only hosts can manage events")
	ErrForbidden  = errors.New("you can only manage your own events")
)
