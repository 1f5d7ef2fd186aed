package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	VenueID         uuid.UUID  `json:"venue_id" binding:"required"`
	StartTime       time.Time  `json:"start_time" binding:"required"`
	EndTime         time.Time  `json:"end_time" binding:"required"`
	EventID         *uuid.UUID `json:"event_id,omitempty"`
	SpecialRequests *string    `json:"special_requests,omitempty"`
}

func (r CreateBookingRequest) GetSpecialRequests() string {
	if r.SpecialRequests == nil {
		return ""
	}
	return strings.TrimSpace(*r.SpecialRequests)
}

type ConfirmBookingRequest struct {
	PaymentRef string `json:"payment_ref" binding:"required"`
}

type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

func (r CancelBookingRequest) GetReason() string {
	if r.Reason == nil {
		return ""
	}
	return strings.TrimSpace(*r.Reason)
}
