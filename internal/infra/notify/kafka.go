package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"venue-booking/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)

// Event is published to interested parties (venue owner dashboards, email
// workers) after a booking state change commits. Delivery is best-effort.
type Event struct {
	Type       string    `json:"type"`
	BookingID  uuid.UUID `json:"booking_id"`
	VenueID    uuid.UUID `json:"venue_id"`
	BookerID   uuid.UUID `json:"booker_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Dispatcher interface {
	// Dispatch publishes asynchronously and never blocks the caller.
	Dispatch(event Event)
}

type KafkaDispatcher struct {
	writer *kafka.Writer
}

func NewKafkaDispatcher(cfg config.Config) *KafkaDispatcher {
	return &KafkaDispatcher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Kafka.Brokers...),
			Topic:        cfg.Kafka.Topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Dispatch publishes on a background goroutine. A failed publish is logged
// and dropped; booking state is already committed and must not be affected.
func (d *KafkaDispatcher) Dispatch(event Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		payload, err := json.Marshal(event)
		if err != nil {
			slog.Error("failed to marshal booking event", "type", event.Type, "error", err.Error())
			return
		}

		msg := kafka.Message{
			// Key by venue so events for one venue stay ordered per partition.
			Key:   []byte(event.VenueID.String()),
			Value: payload,
		}

		if err := d.writer.WriteMessages(ctx, msg); err != nil {
			slog.Warn("failed to publish booking event",
				"type", event.Type,
				"booking_id", event.BookingID,
				"error", err.Error())
		}
	}()
}

func (d *KafkaDispatcher) Close() error {
	return d.writer.Close()
}

// NopDispatcher discards events. Used in tests and when no broker is wired.
type NopDispatcher struct{}

func (NopDispatcher) Dispatch(Event) {}
