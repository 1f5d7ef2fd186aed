package queries

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type SlotView struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AvailabilityReadStore interface {
	// ListByVenue returns active intervals overlapping [from, to), ordered
	// by start time.
	ListByVenue(ctx context.Context, venueID uuid.UUID, from, to time.Time) ([]SlotView, error)
}

// AvailabilityCache is read-through: misses and cache failures fall back to
// the store, never to an error.
type AvailabilityCache interface {
	Get(ctx context.Context, venueID uuid.UUID, from, to time.Time) ([]SlotView, bool, error)
	Set(ctx context.Context, venueID uuid.UUID, from, to time.Time, slots []SlotView) error
}

type AvailabilityQueries interface {
	GetAvailability(ctx context.Context, venueID uuid.UUID, from, to time.Time) ([]SlotView, error)
}

type availabilityQueriesImpl struct {
	store AvailabilityReadStore
	cache AvailabilityCache
}

func NewAvailabilityQueries(store AvailabilityReadStore, cache AvailabilityCache) AvailabilityQueries {
	return &availabilityQueriesImpl{store: store, cache: cache}
}

func (q *availabilityQueriesImpl) GetAvailability(ctx context.Context, venueID uuid.UUID, from, to time.Time) ([]SlotView, error) {
	if cached, ok, err := q.cache.Get(ctx, venueID, from, to); err == nil && ok {
		return cached, nil
	} else if err != nil {
		slog.Warn("availability cache read failed", "venue_id", venueID, "error", err.Error())
	}

	slots, err := q.store.ListByVenue(ctx, venueID, from, to)
	if err != nil {
		return nil, err
	}

	if err := q.cache.Set(ctx, venueID, from, to, slots); err != nil {
		slog.Warn("availability cache write failed", "venue_id", venueID, "error", err.Error())
	}

	return slots, nil
}
