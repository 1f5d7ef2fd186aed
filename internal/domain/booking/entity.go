package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeSlot  = errors.New("invalid time slot")
	ErrStartInPast      = errors.New("start time is in the past")
	ErrNegativePrice    = errors.New("price cannot be negative")
	ErrNotPending       = errors.New("booking is not pending")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrEmptyPaymentRef  = errors.New("payment reference cannot be empty")
	ErrInvalidStatus    = errors.New("invalid booking status")
)

type Booking struct {
	id                 uuid.UUID
	venueID            uuid.UUID
	bookerID           uuid.UUID
	eventID            *uuid.UUID
	slot               TimeSlot
	price              Money
	status             Status
	paymentStatus      PaymentStatus
	specialRequests    Note
	paymentRef         *string
	cancellationReason *string
	createdAt          time.Time
	updatedAt          time.Time
}

func NewBooking(
	venueID, bookerID uuid.UUID,
	eventID *uuid.UUID,
	slot TimeSlot,
	price Money,
	specialRequests Note,
) (*Booking, error) {
	if price.Cents() < 0 {
		return nil, ErrNegativePrice
	}

	return &Booking{
		id:              uuid.New(),
		venueID:         venueID,
		bookerID:        bookerID,
		eventID:         eventID,
		slot:            slot,
		price:           price,
		status:          StatusPending,
		paymentStatus:   PaymentPending,
		specialRequests: specialRequests,
	}, nil
}

func Reconstruct(
	id, venueID, bookerID uuid.UUID,
	eventID *uuid.UUID,
	slot TimeSlot,
	price Money,
	status Status,
	paymentStatus PaymentStatus,
	specialRequests Note,
	paymentRef, cancellationReason *string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                 id,
		venueID:            venueID,
		bookerID:           bookerID,
		eventID:            eventID,
		slot:               slot,
		price:              price,
		status:             status,
		paymentStatus:      paymentStatus,
		specialRequests:    specialRequests,
		paymentRef:         paymentRef,
		cancellationReason: cancellationReason,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// Confirm moves pending -> confirmed and marks the booking paid. The price
// re-quote check happens in the usecase before this is called.
func (b *Booking) Confirm(paymentRef string, now time.Time) error {
	if b.status != StatusPending {
		return ErrNotPending
	}
	if paymentRef == "" {
		return ErrEmptyPaymentRef
	}

	b.status = StatusConfirmed
	b.paymentStatus = PaymentPaid
	b.paymentRef = &paymentRef
	b.updatedAt = now
	return nil
}

// Cancel is terminal. Cancelling twice fails with ErrAlreadyCancelled so
// callers can distinguish a no-op replay from a real transition.
func (b *Booking) Cancel(reason string, now time.Time) error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}

	b.status = StatusCancelled
	if b.paymentStatus == PaymentPaid {
		// Money movement is the payment collaborator's job; we only record
		// that a refund is owed.
		b.paymentStatus = PaymentRefunded
	}
	if reason != "" {
		b.cancellationReason = &reason
	}
	b.updatedAt = now
	return nil
}

// CanBeCancelledBy allows the booker and the venue owner, nobody else.
func (b *Booking) CanBeCancelledBy(actorID, venueOwnerID uuid.UUID) bool {
	return actorID == b.bookerID || actorID == venueOwnerID
}

func (b *Booking) IsActive() bool {
	return b.status.IsActive()
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) VenueID() uuid.UUID           { return b.venueID }
func (b *Booking) BookerID() uuid.UUID          { return b.bookerID }
func (b *Booking) EventID() *uuid.UUID          { return b.eventID }
func (b *Booking) Slot() TimeSlot               { return b.slot }
func (b *Booking) Price() Money                 { return b.price }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) SpecialRequests() Note        { return b.specialRequests }
func (b *Booking) PaymentRef() *string          { return b.paymentRef }
func (b *Booking) CancellationReason() *string  { return b.cancellationReason }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }
