package venue

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyName           = errors.New("venue name cannot be empty")
	ErrUnknownPricingModel = errors.New("unknown pricing model")
	ErrNegativeRate        = errors.New("pricing rate cannot be negative")
	ErrInvalidCapacity     = errors.New("capacity cannot be negative")
)

// Pricing is the rule set the calculator turns into a price. The weekend
// rate only applies to the daily model and may be absent.
type Pricing struct {
	Model            PricingModel
	HourlyRateCents  int64
	DailyRateCents   int64
	WeekendRateCents *int64
}

func (p Pricing) Validate() error {
	if !p.Model.IsValid() {
		return ErrUnknownPricingModel
	}
	if p.HourlyRateCents < 0 || p.DailyRateCents < 0 {
		return ErrNegativeRate
	}
	if p.WeekendRateCents != nil && *p.WeekendRateCents < 0 {
		return ErrNegativeRate
	}
	return nil
}

type Venue struct {
	id       uuid.UUID
	ownerID  uuid.UUID
	name     string
	pricing  Pricing
	capacity int
	active   bool
}

func NewVenue(id, ownerID uuid.UUID, name string, pricing Pricing, capacity int, active bool) (*Venue, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrEmptyName
	}
	if err := pricing.Validate(); err != nil {
		return nil, err
	}
	if capacity < 0 {
		return nil, ErrInvalidCapacity
	}

	return &Venue{
		id:       id,
		ownerID:  ownerID,
		name:     trimmed,
		pricing:  pricing,
		capacity: capacity,
		active:   active,
	}, nil
}

func (v *Venue) ID() uuid.UUID      { return v.id }
func (v *Venue) OwnerID() uuid.UUID { return v.ownerID }
func (v *Venue) Name() string       { return v.name }
func (v *Venue) Pricing() Pricing   { return v.pricing }
func (v *Venue) Capacity() int      { return v.capacity }
func (v *Venue) IsActive() bool     { return v.active }
