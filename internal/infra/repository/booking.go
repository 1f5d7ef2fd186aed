package repository

import (
	"context"
	"errors"
	"time"

	"venue-booking/internal/domain/booking"
	"venue-booking/internal/infra"
	"venue-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

const createBookingSQL = `
INSERT INTO bookings (
	id, venue_id, booker_id, event_id,
	start_time, end_time, total_price_cents,
	status, payment_status, special_requests
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''))
RETURNING id`

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, createBookingSQL,
		b.ID(),
		b.VenueID(),
		b.BookerID(),
		b.EventID(),
		b.Slot().Start(),
		b.Slot().End(),
		b.Price().Cents(),
		b.Status().String(),
		b.PaymentStatus().String(),
		b.SpecialRequests().String(),
	).Scan(&id)
	if err != nil {
		if code := pgErrCode(err); code == pgErrCodeUniqueViolation {
			return uuid.Nil, infra.WrapRepoErr("booking already exists", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

const findBookingForUpdateSQL = `
SELECT id, venue_id, booker_id, event_id,
       start_time, end_time, total_price_cents,
       status, payment_status, special_requests,
       payment_ref, cancellation_reason,
       created_at, updated_at
FROM bookings
WHERE id = $1
FOR UPDATE`

func (r *BookingRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, findBookingForUpdateSQL, id)

	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock booking row", err)
	}
	return b, nil
}

const updateBookingStateSQL = `
UPDATE bookings
SET status = $2,
    payment_status = $3,
    payment_ref = $4,
    cancellation_reason = $5,
    updated_at = now()
WHERE id = $1`

func (r *BookingRepository) UpdateState(ctx context.Context, b *booking.Booking) error {
	tag, err := r.db.Exec(ctx, updateBookingStateSQL,
		b.ID(),
		b.Status().String(),
		b.PaymentStatus().String(),
		b.PaymentRef(),
		b.CancellationReason(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking state", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id, venueID, bookerID uuid.UUID
		eventID               *uuid.UUID
		startTime, endTime    time.Time
		priceCents            int64
		status, payStatus     string
		specialRequests       *string
		paymentRef            *string
		cancellationReason    *string
		createdAt, updatedAt  time.Time
	)

	err := row.Scan(
		&id, &venueID, &bookerID, &eventID,
		&startTime, &endTime, &priceCents,
		&status, &payStatus, &specialRequests,
		&paymentRef, &cancellationReason,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot, err := booking.NewTimeSlot(startTime, endTime)
	if err != nil {
		return nil, err
	}

	note := booking.NewNote("")
	if specialRequests != nil {
		note = booking.NewNote(*specialRequests)
	}

	return booking.Reconstruct(
		id, venueID, bookerID, eventID,
		slot,
		booking.NewMoney(priceCents),
		booking.Status(status),
		booking.PaymentStatus(payStatus),
		note,
		paymentRef, cancellationReason,
		createdAt, updatedAt,
	), nil
}
