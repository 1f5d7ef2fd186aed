package shared

import (
	"context"

	"venue-booking/internal/domain/booking"
	"venue-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrMaxRetriesExceeded marks a write that kept hitting transient failures
// (serialization, deadlock, lock timeout). Callers surface it as a
// retryable busy condition, never as a conflict.
var ErrMaxRetriesExceeded = errs.New("transaction failed after max retries")

type UnitOfWork interface {
	// Within: full transaction for write operations with bounded retry on
	// transient failures (serialization, deadlock, lock timeout).
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: validation reads outside a transaction.
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Ledger() LedgerRepository
	Reads() CommandReads
}

type CommandReads interface {
	VenueByID(ctx context.Context, id uuid.UUID) (*VenueSnapshot, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error)
	// FindForUpdate locks the booking row for the lifetime of the enclosing
	// transaction so state transitions serialize per booking.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	UpdateState(ctx context.Context, b *booking.Booking) error
}

// LedgerRepository is the only writer of availability intervals. Reserve and
// the booking insert always share a transaction: no booking without an
// interval and no interval without a booking.
type LedgerRepository interface {
	Reserve(ctx context.Context, venueID uuid.UUID, slot booking.TimeSlot, bookingID uuid.UUID) error
	Release(ctx context.Context, bookingID uuid.UUID) error
}
