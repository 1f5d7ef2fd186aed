package response

import (
	"time"

	"venue-booking/internal/usecase/queries"
)

type BookedSlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AvailabilityResponse struct {
	From        time.Time            `json:"from"`
	To          time.Time            `json:"to"`
	BookedSlots []BookedSlotResponse `json:"bookedSlots"`
}

func FromSlotViews(from, to time.Time, slots []queries.SlotView) *AvailabilityResponse {
	booked := make([]BookedSlotResponse, len(slots))
	for i, s := range slots {
		booked[i] = BookedSlotResponse{Start: s.Start, End: s.End}
	}
	return &AvailabilityResponse{
		From:        from,
		To:          to,
		BookedSlots: booked,
	}
}
