package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"venue-booking/internal/domain/booking"
	"venue-booking/internal/infra"
	"venue-booking/internal/infra/notify"
	"venue-booking/internal/pkg/clock"
	"venue-booking/internal/pkg/errs"
	"venue-booking/internal/usecase/queries"
	"venue-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookingInput struct {
	VenueID         uuid.UUID
	BookerID        uuid.UUID
	EventID         *uuid.UUID
	StartTime       time.Time
	EndTime         time.Time
	SpecialRequests string
}

type ConfirmBookingInput struct {
	BookingID  uuid.UUID
	ActorID    uuid.UUID
	PaymentRef string
}

type CancelBookingInput struct {
	BookingID uuid.UUID
	ActorID   uuid.UUID
	Reason    string
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*queries.BookingView, error)
	ConfirmBooking(ctx context.Context, in ConfirmBookingInput) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, in CancelBookingInput) (*queries.BookingView, error)
}

// AvailabilityInvalidator drops cached availability for a venue after a
// reservation set change commits.
type AvailabilityInvalidator interface {
	Invalidate(ctx context.Context, venueID uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow         shared.UnitOfWork
	factory     *booking.Factory
	reads       queries.BookingReadStore
	invalidator AvailabilityInvalidator
	dispatcher  notify.Dispatcher
	clock       clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	factory *booking.Factory,
	reads queries.BookingReadStore,
	invalidator AvailabilityInvalidator,
	dispatcher notify.Dispatcher,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:         uow,
		factory:     factory,
		reads:       reads,
		invalidator: invalidator,
		dispatcher:  dispatcher,
		clock:       clk,
	}
}

// CreateBooking quotes the price server-side and reserves the slot. The
// booking row and its availability interval are written in one transaction;
// the interval insert is where a losing concurrent writer fails.
func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, in CreateBookingInput) (*queries.BookingView, error) {
	slot, err := booking.NewTimeSlot(in.StartTime, in.EndTime)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidTimeSlot)
	}

	// Venue validation reads run outside the write transaction; the
	// exclusion constraint makes the reserve itself safe regardless.
	venueSnap, err := c.uow.CommandReads().VenueByID(ctx, in.VenueID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrVenueNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !venueSnap.Active {
		return nil, errs.ErrVenueInactive
	}

	b, err := c.factory.CreateBooking(
		venueSnap.ID,
		venueSnap.Pricing,
		in.BookerID,
		in.EventID,
		slot,
		booking.NewNote(in.SpecialRequests),
	)
	if err != nil {
		if errors.Is(err, booking.ErrStartInPast) {
			return nil, errs.Mark(err, errs.ErrInvalidTimeSlot)
		}
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Bookings().Create(ctx, b); err != nil {
			return err
		}
		return tx.Ledger().Reserve(ctx, b.VenueID(), b.Slot(), b.ID())
	})
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(err, errs.ErrSlotUnavailable)
		}
		if errors.Is(err, shared.ErrMaxRetriesExceeded) {
			return nil, errs.Mark(err, errs.ErrBookingSystemBusy)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	c.afterReservationChange(ctx, venueSnap, b, notify.EventBookingCreated)

	return c.viewAfterWrite(ctx, b.ID())
}

// ConfirmBooking re-quotes against the venue's current pricing before
// accepting payment. A stale quote fails with a conflict instead of
// silently charging the old total.
func (c *bookingCommandsImpl) ConfirmBooking(ctx context.Context, in ConfirmBookingInput) (*queries.BookingView, error) {
	var (
		confirmed *booking.Booking
		venueSnap *shared.VenueSnapshot
	)

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindForUpdate(ctx, in.BookingID)
		if err != nil {
			return err
		}

		if b.BookerID() != in.ActorID {
			return errs.ErrNotAuthorized
		}

		venueSnap, err = tx.Reads().VenueByID(ctx, b.VenueID())
		if err != nil {
			return err
		}

		currentPrice := c.factory.QuotePriceCents(venueSnap.Pricing, b.Slot())
		if currentPrice != b.Price().Cents() {
			return errs.ErrPriceMismatch
		}

		if err := b.Confirm(in.PaymentRef, c.clock.Now()); err != nil {
			return err
		}
		if err := tx.Bookings().UpdateState(ctx, b); err != nil {
			return err
		}

		confirmed = b
		return nil
	})
	if err != nil {
		return nil, c.mapTransitionErr(err)
	}

	c.dispatcher.Dispatch(notify.Event{
		Type:       notify.EventBookingConfirmed,
		BookingID:  confirmed.ID(),
		VenueID:    confirmed.VenueID(),
		BookerID:   confirmed.BookerID(),
		OwnerID:    venueSnap.OwnerID,
		OccurredAt: c.clock.Now(),
	})

	return c.viewAfterWrite(ctx, in.BookingID)
}

// CancelBooking releases the reserved interval in the same transaction as
// the state change, so the slot reopens exactly when the cancellation
// becomes visible.
func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, in CancelBookingInput) (*queries.BookingView, error) {
	var (
		cancelled *booking.Booking
		venueSnap *shared.VenueSnapshot
	)

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindForUpdate(ctx, in.BookingID)
		if err != nil {
			return err
		}

		venueSnap, err = tx.Reads().VenueByID(ctx, b.VenueID())
		if err != nil {
			return err
		}

		if !b.CanBeCancelledBy(in.ActorID, venueSnap.OwnerID) {
			return errs.ErrNotAuthorized
		}

		if err := b.Cancel(in.Reason, c.clock.Now()); err != nil {
			return err
		}
		if err := tx.Bookings().UpdateState(ctx, b); err != nil {
			return err
		}
		if err := tx.Ledger().Release(ctx, b.ID()); err != nil {
			return err
		}

		cancelled = b
		return nil
	})
	if err != nil {
		return nil, c.mapTransitionErr(err)
	}

	c.afterReservationChange(ctx, venueSnap, cancelled, notify.EventBookingCancelled)

	return c.viewAfterWrite(ctx, in.BookingID)
}

func (c *bookingCommandsImpl) mapTransitionErr(err error) error {
	switch {
	case errors.Is(err, errs.ErrNotAuthorized),
		errors.Is(err, errs.ErrPriceMismatch):
		return err
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrBookingNotFound)
	case errors.Is(err, booking.ErrNotPending):
		return errs.Mark(err, errs.ErrBookingNotPending)
	case errors.Is(err, booking.ErrAlreadyCancelled):
		return errs.Mark(err, errs.ErrAlreadyCancelled)
	case errors.Is(err, booking.ErrEmptyPaymentRef):
		return errs.Mark(err, errs.ErrDomainValidation)
	case errors.Is(err, shared.ErrMaxRetriesExceeded):
		return errs.Mark(err, errs.ErrBookingSystemBusy)
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}

// afterReservationChange runs post-commit side effects. Both are
// best-effort: a failed invalidation leaves a short-TTL stale entry and a
// failed publish is logged by the dispatcher.
func (c *bookingCommandsImpl) afterReservationChange(ctx context.Context, venueSnap *shared.VenueSnapshot, b *booking.Booking, eventType string) {
	if err := c.invalidator.Invalidate(ctx, b.VenueID()); err != nil {
		slog.Warn("availability cache invalidation failed",
			"venue_id", b.VenueID(),
			"error", err.Error())
	}

	c.dispatcher.Dispatch(notify.Event{
		Type:       eventType,
		BookingID:  b.ID(),
		VenueID:    b.VenueID(),
		BookerID:   b.BookerID(),
		OwnerID:    venueSnap.OwnerID,
		OccurredAt: c.clock.Now(),
	})
}

// Read-after-write: commands answer with the read model so the HTTP layer
// has a single response shape.
func (c *bookingCommandsImpl) viewAfterWrite(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	view, err := c.reads.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}
