package builder

import (
	"time"

	"venue-booking/internal/domain/booking"

	"github.com/google/uuid"
)

// BaseTime is a Monday; weekend pricing cases shift from here explicitly.
var BaseTime = time.Date(2030, time.June, 3, 9, 0, 0, 0, time.UTC)

type BookingBuilder struct {
	venueID  uuid.UUID
	bookerID uuid.UUID
	eventID  *uuid.UUID
	start    time.Time
	end      time.Time
	price    int64
	note     string
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		venueID:  uuid.New(),
		bookerID: uuid.New(),
		start:    BaseTime,
		end:      BaseTime.Add(2 * time.Hour),
		price:    10000,
	}
}

func (b *BookingBuilder) WithVenueID(id uuid.UUID) *BookingBuilder {
	b.venueID = id
	return b
}

func (b *BookingBuilder) WithBookerID(id uuid.UUID) *BookingBuilder {
	b.bookerID = id
	return b
}

func (b *BookingBuilder) WithEventID(id uuid.UUID) *BookingBuilder {
	b.eventID = &id
	return b
}

func (b *BookingBuilder) WithSlot(start, end time.Time) *BookingBuilder {
	b.start = start
	b.end = end
	return b
}

func (b *BookingBuilder) WithPriceCents(cents int64) *BookingBuilder {
	b.price = cents
	return b
}

func (b *BookingBuilder) WithNote(note string) *BookingBuilder {
	b.note = note
	return b
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	slot, err := booking.NewTimeSlot(b.start, b.end)
	if err != nil {
		return nil, err
	}

	return booking.NewBooking(
		b.venueID,
		b.bookerID,
		b.eventID,
		slot,
		booking.NewMoney(b.price),
		booking.NewNote(b.note),
	)
}
