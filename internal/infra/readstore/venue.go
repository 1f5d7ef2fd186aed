package readstore

import (
	"context"
	"errors"

	"venue-booking/internal/domain/venue"
	"venue-booking/internal/infra"
	"venue-booking/internal/infra/db"
	"venue-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VenueReadStore struct {
	db db.DBTX
}

func NewVenueReadStore(dbtx db.DBTX) *VenueReadStore {
	return &VenueReadStore{db: dbtx}
}

const findVenueByIDSQL = `
SELECT id, owner_id, name, pricing_model,
       hourly_rate_cents, daily_rate_cents, weekend_rate_cents,
       capacity, active
FROM venues
WHERE id = $1`

func (r *VenueReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.VenueSnapshot, error) {
	var (
		snap         shared.VenueSnapshot
		pricingModel string
		weekendRate  *int64
	)

	err := r.db.QueryRow(ctx, findVenueByIDSQL, id).Scan(
		&snap.ID,
		&snap.OwnerID,
		&snap.Name,
		&pricingModel,
		&snap.Pricing.HourlyRateCents,
		&snap.Pricing.DailyRateCents,
		&weekendRate,
		&snap.Capacity,
		&snap.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("venue not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find venue by ID", err)
	}

	snap.Pricing.Model = venue.PricingModel(pricingModel)
	snap.Pricing.WeekendRateCents = weekendRate
	return &snap, nil
}
