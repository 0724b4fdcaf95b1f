package services

import "errors"

// Domain-level error values returned by the services. Controllers translate
// these into HTTP statuses; callers match with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidRange       = errors.New("check-out date must be after check-in date")
	ErrInvalidState       = errors.New("invalid state transition")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrCardExpired        = errors.New("card expired")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrNoAvailability     = errors.New("no rooms available for the requested dates")
	ErrNoPayment          = errors.New("no successful payment found")
	ErrNoDefaultCard      = errors.New("no default card found")
)
