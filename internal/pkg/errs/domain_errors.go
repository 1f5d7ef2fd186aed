package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Venue errors
	ErrVenueNotFound = errors.New("venue not found")
	ErrVenueInactive = errors.New("venue is inactive")

	// Booking errors
	ErrBookingNotFound   = errors.New("booking not found")
	ErrBookingNotPending = errors.New("booking is not pending")
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrSlotUnavailable   = errors.New("time slot unavailable")
	ErrPriceMismatch     = errors.New("price mismatch, re-quote required")
	ErrInvalidTimeSlot   = errors.New("invalid time slot")
	ErrNotAuthorized     = errors.New("actor not authorized for booking")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrBookingSystemBusy       = errors.New("booking system busy")
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
