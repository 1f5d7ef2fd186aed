package readstore

import (
	"context"
	"time"

	"venue-booking/internal/infra"
	"venue-booking/internal/infra/db"
	"venue-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type AvailabilityReadStore struct {
	db db.DBTX
}

func NewAvailabilityReadStore(dbtx db.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{db: dbtx}
}

const listIntervalsSQL = `
SELECT lower(during), upper(during)
FROM availability_intervals
WHERE venue_id = $1
  AND during && tstzrange($2, $3, '[)')
ORDER BY lower(during)`

func (r *AvailabilityReadStore) ListByVenue(ctx context.Context, venueID uuid.UUID, from, to time.Time) ([]queries.SlotView, error) {
	rows, err := r.db.Query(ctx, listIntervalsSQL, venueID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list availability intervals", err)
	}
	defer rows.Close()

	result := make([]queries.SlotView, 0)
	for rows.Next() {
		var slot queries.SlotView
		if err := rows.Scan(&slot.Start, &slot.End); err != nil {
			return nil, infra.WrapRepoErr("failed to scan interval row", err)
		}
		result = append(result, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate interval rows", err)
	}
	return result, nil
}
