package booking

import (
	"math"
	"time"

	"venue-booking/internal/domain/venue"
)

// PriceCalculator turns (pricing rule, slot) into a price. Implementations
// must be pure: the same inputs always yield the same price.
type PriceCalculator interface {
	CalculatePriceCents(pricing venue.Pricing, slot TimeSlot) int64
}

type StandardPriceCalculator struct{}

func NewStandardPriceCalculator() *StandardPriceCalculator {
	return &StandardPriceCalculator{}
}

func (pc *StandardPriceCalculator) CalculatePriceCents(pricing venue.Pricing, slot TimeSlot) int64 {
	hours := slot.Hours()

	switch pricing.Model {
	case venue.PricingHourly:
		return int64(math.Round(float64(pricing.HourlyRateCents) * hours))
	case venue.PricingDaily:
		days := int64(math.Ceil(hours / 24))
		rate := pricing.DailyRateCents
		if pricing.WeekendRateCents != nil && startsOnWeekend(slot) {
			rate = *pricing.WeekendRateCents
		}
		return rate * days
	default:
		return -1
	}
}

func startsOnWeekend(slot TimeSlot) bool {
	wd := slot.Start().Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
