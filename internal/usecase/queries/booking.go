package queries

import (
	"context"
	"time"

	"venue-booking/internal/infra"
	"venue-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID                 uuid.UUID  `json:"id"`
	VenueID            uuid.UUID  `json:"venue_id"`
	VenueName          string     `json:"venue_name"`
	BookerID           uuid.UUID  `json:"booker_id"`
	EventID            *uuid.UUID `json:"event_id,omitempty"`
	StartTime          time.Time  `json:"start_time"`
	EndTime            time.Time  `json:"end_time"`
	TotalPriceCents    int64      `json:"total_price_cents"`
	Status             string     `json:"status"`
	PaymentStatus      string     `json:"payment_status"`
	SpecialRequests    *string    `json:"special_requests,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID              uuid.UUID `json:"id"`
	VenueID         uuid.UUID `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	CreatedAt       time.Time `json:"created_at"`
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByBookerID(ctx context.Context, bookerID uuid.UUID, status *string) ([]*BookingListItem, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*BookingListItem, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, status *string) ([]*BookingListItem, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, status *string) ([]*BookingListItem, error) {
	if status != nil && !isKnownStatus(*status) {
		return nil, errs.Mark(errs.Newf("unknown status filter %q", *status), errs.ErrDomainValidation)
	}
	return q.store.FindByBookerID(ctx, userID, status)
}

func (q *bookingQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*BookingListItem, error) {
	return q.store.FindByOwnerID(ctx, ownerID)
}

func isKnownStatus(s string) bool {
	switch s {
	case "pending", "confirmed", "cancelled":
		return true
	default:
		return false
	}
}
