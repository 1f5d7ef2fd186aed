package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"venue-booking/internal/pkg/config"
	"venue-booking/internal/pkg/errs"
	"venue-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AvailabilityCache caches per-venue interval listings in Redis.
//
// Invalidation uses a per-venue generation counter rather than key scans:
// every data key embeds the venue's current generation, so bumping the
// counter orphans all cached windows for that venue at once. Orphaned keys
// expire via TTL.
type AvailabilityCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewAvailabilityCache(client redis.UniversalClient, cfg config.Config) *AvailabilityCache {
	return &AvailabilityCache{
		client: client,
		ttl:    cfg.Booking.AvailabilityCacheTTL,
	}
}

func versionKey(venueID uuid.UUID) string {
	return fmt.Sprintf("availability:ver:%s", venueID)
}

func dataKey(venueID uuid.UUID, version int64, from, to time.Time) string {
	return fmt.Sprintf("availability:%s:%d:%d:%d", venueID, version, from.Unix(), to.Unix())
}

func (c *AvailabilityCache) currentVersion(ctx context.Context, venueID uuid.UUID) (int64, error) {
	ver, err := c.client.Get(ctx, versionKey(venueID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, errs.Wrap(err, "failed to read availability cache version")
	}
	return ver, nil
}

func (c *AvailabilityCache) Get(ctx context.Context, venueID uuid.UUID, from, to time.Time) ([]queries.SlotView, bool, error) {
	ver, err := c.currentVersion(ctx, venueID)
	if err != nil {
		return nil, false, err
	}

	raw, err := c.client.Get(ctx, dataKey(venueID, ver, from, to)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.Wrap(err, "failed to read availability cache")
	}

	var slots []queries.SlotView
	if err := json.Unmarshal(raw, &slots); err != nil {
		// Stale or corrupt payload; treat as a miss so the store refreshes it.
		return nil, false, nil
	}
	return slots, true, nil
}

func (c *AvailabilityCache) Set(ctx context.Context, venueID uuid.UUID, from, to time.Time, slots []queries.SlotView) error {
	ver, err := c.currentVersion(ctx, venueID)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return errs.Wrap(err, "failed to marshal availability slots")
	}

	if err := c.client.Set(ctx, dataKey(venueID, ver, from, to), raw, c.ttl).Err(); err != nil {
		return errs.Wrap(err, "failed to write availability cache")
	}
	return nil
}

// Invalidate bumps the venue's generation so all cached windows go stale.
// Called after every successful reservation or cancellation.
func (c *AvailabilityCache) Invalidate(ctx context.Context, venueID uuid.UUID) error {
	if err := c.client.Incr(ctx, versionKey(venueID)).Err(); err != nil {
		return errs.Wrap(err, "failed to invalidate availability cache")
	}
	return nil
}
