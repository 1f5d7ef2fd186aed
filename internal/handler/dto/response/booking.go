package response

import (
	"time"

	"venue-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID                 uuid.UUID  `json:"id"`
	VenueID            uuid.UUID  `json:"venueId"`
	VenueName          string     `json:"venueName"`
	BookerID           uuid.UUID  `json:"bookerId"`
	EventID            *uuid.UUID `json:"eventId,omitempty"`
	StartTime          time.Time  `json:"startTime"`
	EndTime            time.Time  `json:"endTime"`
	TotalPriceCents    int64      `json:"totalPriceCents"`
	Status             string     `json:"status"`
	PaymentStatus      string     `json:"paymentStatus"`
	SpecialRequests    *string    `json:"specialRequests,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type BookingListResponse struct {
	ID              uuid.UUID `json:"id"`
	VenueID         uuid.UUID `json:"venueId"`
	VenueName       string    `json:"venueName"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"paymentStatus"`
	CreatedAt       time.Time `json:"createdAt"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:                 rm.ID,
		VenueID:            rm.VenueID,
		VenueName:          rm.VenueName,
		BookerID:           rm.BookerID,
		EventID:            rm.EventID,
		StartTime:          rm.StartTime,
		EndTime:            rm.EndTime,
		TotalPriceCents:    rm.TotalPriceCents,
		Status:             rm.Status,
		PaymentStatus:      rm.PaymentStatus,
		SpecialRequests:    rm.SpecialRequests,
		CancellationReason: rm.CancellationReason,
		CreatedAt:          rm.CreatedAt,
		UpdatedAt:          rm.UpdatedAt,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:              rm.ID,
		VenueID:         rm.VenueID,
		VenueName:       rm.VenueName,
		StartTime:       rm.StartTime,
		EndTime:         rm.EndTime,
		TotalPriceCents: rm.TotalPriceCents,
		Status:          rm.Status,
		PaymentStatus:   rm.PaymentStatus,
		CreatedAt:       rm.CreatedAt,
	}
}
