package builder

import (
	"venue-booking/internal/domain/venue"
	"venue-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type VenueBuilder struct {
	id       uuid.UUID
	ownerID  uuid.UUID
	name     string
	pricing  venue.Pricing
	capacity int
	active   bool
}

func NewVenueBuilder() *VenueBuilder {
	return &VenueBuilder{
		id:      uuid.New(),
		ownerID: uuid.New(),
		name:    "Grand Hall",
		pricing: venue.Pricing{
			Model:           venue.PricingHourly,
			HourlyRateCents: 5000,
			DailyRateCents:  80000,
		},
		capacity: 200,
		active:   true,
	}
}

func (b *VenueBuilder) WithID(id uuid.UUID) *VenueBuilder {
	b.id = id
	return b
}

func (b *VenueBuilder) WithOwnerID(ownerID uuid.UUID) *VenueBuilder {
	b.ownerID = ownerID
	return b
}

func (b *VenueBuilder) WithName(name string) *VenueBuilder {
	b.name = name
	return b
}

func (b *VenueBuilder) WithPricing(pricing venue.Pricing) *VenueBuilder {
	b.pricing = pricing
	return b
}

func (b *VenueBuilder) WithHourlyPricing(rateCents int64) *VenueBuilder {
	b.pricing = venue.Pricing{
		Model:           venue.PricingHourly,
		HourlyRateCents: rateCents,
	}
	return b
}

func (b *VenueBuilder) WithDailyPricing(rateCents int64, weekendRateCents *int64) *VenueBuilder {
	b.pricing = venue.Pricing{
		Model:            venue.PricingDaily,
		DailyRateCents:   rateCents,
		WeekendRateCents: weekendRateCents,
	}
	return b
}

func (b *VenueBuilder) WithCapacity(capacity int) *VenueBuilder {
	b.capacity = capacity
	return b
}

func (b *VenueBuilder) Inactive() *VenueBuilder {
	b.active = false
	return b
}

func (b *VenueBuilder) BuildDomain() (*venue.Venue, error) {
	return venue.NewVenue(b.id, b.ownerID, b.name, b.pricing, b.capacity, b.active)
}

func (b *VenueBuilder) BuildSnapshot() *shared.VenueSnapshot {
	return &shared.VenueSnapshot{
		ID:       b.id,
		OwnerID:  b.ownerID,
		Name:     b.name,
		Pricing:  b.pricing,
		Capacity: b.capacity,
		Active:   b.active,
	}
}
