package readstore

import (
	"context"
	"errors"

	"venue-booking/internal/infra"
	"venue-booking/internal/infra/db"
	"venue-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const findBookingViewByIDSQL = `
SELECT b.id, b.venue_id, v.name, b.booker_id, b.event_id,
       b.start_time, b.end_time, b.total_price_cents,
       b.status, b.payment_status, b.special_requests, b.cancellation_reason,
       b.created_at, b.updated_at
FROM bookings b
JOIN venues v ON v.id = b.venue_id
WHERE b.id = $1`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var view queries.BookingView

	err := r.db.QueryRow(ctx, findBookingViewByIDSQL, id).Scan(
		&view.ID, &view.VenueID, &view.VenueName, &view.BookerID, &view.EventID,
		&view.StartTime, &view.EndTime, &view.TotalPriceCents,
		&view.Status, &view.PaymentStatus, &view.SpecialRequests, &view.CancellationReason,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	return &view, nil
}

const findBookingsByBookerSQL = `
SELECT b.id, b.venue_id, v.name,
       b.start_time, b.end_time, b.total_price_cents,
       b.status, b.payment_status, b.created_at
FROM bookings b
JOIN venues v ON v.id = b.venue_id
WHERE b.booker_id = $1
  AND ($2::text IS NULL OR b.status = $2)
ORDER BY b.created_at DESC`

func (r *BookingReadStore) FindByBookerID(ctx context.Context, bookerID uuid.UUID, status *string) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, findBookingsByBookerSQL, bookerID, status)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings by booker ID", err)
	}
	defer rows.Close()

	return scanBookingListItems(rows)
}

const findBookingsByOwnerSQL = `
SELECT b.id, b.venue_id, v.name,
       b.start_time, b.end_time, b.total_price_cents,
       b.status, b.payment_status, b.created_at
FROM bookings b
JOIN venues v ON v.id = b.venue_id
WHERE v.owner_id = $1
ORDER BY b.start_time ASC`

func (r *BookingReadStore) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, findBookingsByOwnerSQL, ownerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings by owner ID", err)
	}
	defer rows.Close()

	return scanBookingListItems(rows)
}

func scanBookingListItems(rows pgx.Rows) ([]*queries.BookingListItem, error) {
	result := make([]*queries.BookingListItem, 0)
	for rows.Next() {
		var item queries.BookingListItem
		err := rows.Scan(
			&item.ID, &item.VenueID, &item.VenueName,
			&item.StartTime, &item.EndTime, &item.TotalPriceCents,
			&item.Status, &item.PaymentStatus, &item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return result, nil
}
