package booking

import (
	"venue-booking/internal/domain/venue"
	"venue-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator) *Factory {
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
	}
}

// CreateBooking quotes the price server-side and builds a pending booking.
// Client-submitted totals are never accepted.
func (f *Factory) CreateBooking(
	venueID uuid.UUID,
	pricing venue.Pricing,
	bookerID uuid.UUID,
	eventID *uuid.UUID,
	slot TimeSlot,
	specialRequests Note,
) (*Booking, error) {
	if err := slot.ValidateNotPastAt(f.Clock.Now()); err != nil {
		return nil, err
	}

	priceCents := f.PriceCalculator.CalculatePriceCents(pricing, slot)
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}

	return NewBooking(
		venueID,
		bookerID,
		eventID,
		slot,
		NewMoney(priceCents),
		specialRequests,
	)
}

// QuotePriceCents recomputes the price from the current pricing rule. Used
// at confirmation to detect re-quote situations.
func (f *Factory) QuotePriceCents(pricing venue.Pricing, slot TimeSlot) int64 {
	return f.PriceCalculator.CalculatePriceCents(pricing, slot)
}
