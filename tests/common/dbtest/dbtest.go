package dbtest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Fixed IDs so tests can reference seeded rows without querying first.
var (
	OwnerID = uuid.MustParse("11111111-1111-1111-1111-111111111111")

	HourlyVenueID   = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	DailyVenueID    = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	InactiveVenueID = uuid.MustParse("44444444-4444-4444-4444-444444444444")
)

const (
	HourlyRateCents  = 5000
	DailyRateCents   = 80000
	WeekendRateCents = 120000
)

const seedVenuesSQL = `
INSERT INTO venues (id, owner_id, name, capacity, pricing_model, hourly_rate_cents, daily_rate_cents, weekend_rate_cents, active)
VALUES
    ($1, $4, 'Grand Hall',    200, 'hourly', $5, 0, NULL, TRUE),
    ($2, $4, 'Riverside Loft', 80, 'daily',  0, $6, $7,   TRUE),
    ($3, $4, 'Old Warehouse', 150, 'hourly', $5, 0, NULL, FALSE)`

func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, seedVenuesSQL,
		HourlyVenueID, DailyVenueID, InactiveVenueID, OwnerID,
		HourlyRateCents, DailyRateCents, WeekendRateCents,
	)
	return err
}

// ResetDB clears mutable state between subtests. Venues are reference data
// and survive; bookings and their intervals are wiped.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, "TRUNCATE availability_intervals, bookings")
	return err
}
