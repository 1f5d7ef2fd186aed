package shared

import (
	"venue-booking/internal/domain/venue"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types (CQRS separation)
type VenueSnapshot struct {
	ID       uuid.UUID
	OwnerID  uuid.UUID
	Name     string
	Pricing  venue.Pricing
	Capacity int
	Active   bool
}
